package kpath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/codable/token"
)

// KPath represents a kinded path.
//   - "a.b" → Object accessed via ".b" (a is an object)
//   - "a[0]" → Array accessed via "[0]" (a is an array)
type KPath struct {
	Field *string // Object field name
	Index *int    // Array index
	Next  *KPath  // Next segment in path (nil for leaf)
}

// NewField returns a single segment path for an object field.
func NewField(name string) *KPath {
	return &KPath{Field: &name}
}

// NewIndex returns a single segment path for an array index.
func NewIndex(i int) *KPath {
	return &KPath{Index: &i}
}

// WithField returns p extended with a field segment.
func (p *KPath) WithField(name string) *KPath {
	return p.Append(NewField(name))
}

// WithIndex returns p extended with an index segment.
func (p *KPath) WithIndex(i int) *KPath {
	return p.Append(NewIndex(i))
}

// Append returns a new path consisting of p followed by q.
func (p *KPath) Append(q *KPath) *KPath {
	if p == nil {
		return q.Copy()
	}
	res := p.Copy()
	last := res
	for last.Next != nil {
		last = last.Next
	}
	last.Next = q.Copy()
	return res
}

// Copy returns a deep copy of p.
func (p *KPath) Copy() *KPath {
	if p == nil {
		return nil
	}
	res := p.copySegment()
	res.Next = p.Next.Copy()
	return res
}

func (p *KPath) copySegment() *KPath {
	res := &KPath{}
	if p.Field != nil {
		tmp := *p.Field
		res.Field = &tmp
	}
	if p.Index != nil {
		tmp := *p.Index
		res.Index = &tmp
	}
	return res
}

// Len returns the number of segments in p.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Last returns the last segment of p, or nil for the root path.
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Parent returns p without its last segment.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	res := p.copySegment()
	res.Next = p.Next.Parent()
	return res
}

// Equal reports whether p and q have the same segments.
func (p *KPath) Equal(q *KPath) bool {
	for p != nil && q != nil {
		if !segmentsEqual(p, q) {
			return false
		}
		p, q = p.Next, q.Next
	}
	return p == nil && q == nil
}

func segmentsEqual(a, b *KPath) bool {
	if (a.Field == nil) != (b.Field == nil) {
		return false
	}
	if a.Field != nil {
		return *a.Field == *b.Field
	}
	if (a.Index == nil) != (b.Index == nil) {
		return false
	}
	if a.Index != nil {
		return *a.Index == *b.Index
	}
	return true
}

// String returns the kinded path string representation of this KPath.
// Example:
//
//	KPath{Field: &"a", Next: &KPath{Field: &"b"}} → "a.b"
//	KPath{Field: &"a", Next: &KPath{Index: &0}} → "a[0]"
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(x.SegmentString())
			continue
		}
		if x.Index != nil {
			buf.WriteString(x.SegmentString())
		}
	}
	return buf.String()
}

// SegmentString returns the string representation of this single segment.
// Examples:
//   - KPath{Field: &"a"} → "a"
//   - KPath{Field: &"field name"} → `"field name"`
//   - KPath{Index: &0} → "[0]"
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		field := *p.Field
		if token.KPathQuoteField(field) {
			return token.Quote(field)
		}
		return field
	}
	if p.Index != nil {
		return fmt.Sprintf("[%d]", *p.Index)
	}
	return ""
}

// Parse parses a kinded path string into a KPath structure.
//
// Examples:
//   - "a.b.c" → Object path with 3 segments
//   - "a[0][1]" → Array path with 3 segments
//   - `a."b.c"` → Object path with 2 segments, the second being "b.c"
//   - "" → Root path (returns nil)
//
// Returns an error if the path syntax is invalid.
func Parse(kpath string) (*KPath, error) {
	if kpath == "" {
		return nil, nil
	}
	var (
		head, tail *KPath
		i          int
	)
	push := func(seg *KPath) {
		if head == nil {
			head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
	}
	n := len(kpath)
	for i < n {
		c := kpath[i]
		switch {
		case c == '[':
			end := strings.IndexByte(kpath[i:], ']')
			if end == -1 {
				return nil, fmt.Errorf("unterminated index at %d in %q", i, kpath)
			}
			idx, err := strconv.Atoi(kpath[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("bad index %q at %d in %q", kpath[i+1:i+end], i, kpath)
			}
			push(NewIndex(idx))
			i += end + 1
		case c == '.':
			if head == nil || i+1 >= n {
				return nil, fmt.Errorf("unexpected '.' at %d in %q", i, kpath)
			}
			i++
			if kpath[i] == '.' || kpath[i] == '[' {
				return nil, fmt.Errorf("empty field at %d in %q", i, kpath)
			}
		case c == '"':
			sz := quotedLen(kpath[i:])
			if sz == -1 {
				return nil, fmt.Errorf("unterminated quoted field at %d in %q", i, kpath)
			}
			f, err := token.Unquote(kpath[i : i+sz])
			if err != nil {
				return nil, fmt.Errorf("bad quoted field at %d in %q: %w", i, kpath, err)
			}
			if err := needSep(head, kpath, i); err != nil {
				return nil, err
			}
			push(NewField(f))
			i += sz
		default:
			if err := needSep(head, kpath, i); err != nil {
				return nil, err
			}
			end := strings.IndexAny(kpath[i:], ".[")
			if end == -1 {
				end = n - i
			}
			push(NewField(kpath[i : i+end]))
			i += end
		}
	}
	return head, nil
}

func needSep(head *KPath, kpath string, i int) error {
	if head == nil {
		return nil
	}
	if kpath[i-1] != '.' {
		return fmt.Errorf("expected '.' before field at %d in %q", i, kpath)
	}
	return nil
}

func quotedLen(s string) int {
	esc := false
	for i := 1; i < len(s); i++ {
		switch {
		case esc:
			esc = false
		case s[i] == '\\':
			esc = true
		case s[i] == '"':
			return i + 1
		}
	}
	return -1
}

// MustParse is like Parse but panics on error.
func MustParse(kpath string) *KPath {
	p, err := Parse(kpath)
	if err != nil {
		panic(err)
	}
	return p
}
