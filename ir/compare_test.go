package ir

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want int
	}{
		{"null eq", Null(), Null(), 0},
		{"null lt bool", Null(), FromBool(false), -1},
		{"false lt true", FromBool(false), FromBool(true), -1},
		{"int eq float", FromInt(2), FromFloat(2.0), 0},
		{"int lt float", FromInt(1), FromFloat(1.5), -1},
		{"number lt string", FromInt(100), FromString(""), -1},
		{"string order", FromString("b"), FromString("a"), 1},
		{"array prefix", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"array lt object", FromSlice(nil), FromMap(nil), -1},
		{
			"object key order ignored",
			FromKeyVals([]KeyVal{{"a", FromInt(1)}, {"b", FromInt(2)}}),
			FromKeyVals([]KeyVal{{"b", FromInt(2)}, {"a", FromInt(1)}}),
			0,
		},
		{
			"object values differ",
			FromKeyVals([]KeyVal{{"a", FromInt(1)}}),
			FromKeyVals([]KeyVal{{"a", FromInt(2)}}),
			-1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("reverse Compare() = %d, want %d", got, -tt.want)
			}
		})
	}
}
