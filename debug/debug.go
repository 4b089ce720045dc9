package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Encode bool
	Union  bool
	Plan   bool
	Patch  bool
	Tokens bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("CODABLE_DEBUG_DECODE")
	d.Encode = boolEnv("CODABLE_DEBUG_ENCODE")
	d.Union = boolEnv("CODABLE_DEBUG_UNION")
	d.Plan = boolEnv("CODABLE_DEBUG_PLAN")
	d.Patch = boolEnv("CODABLE_DEBUG_PATCH")
	d.Tokens = boolEnv("CODABLE_DEBUG_TOKENS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Union() bool {
	return d.Union
}
func Plan() bool {
	return d.Plan
}
func Patch() bool {
	return d.Patch
}
func Tokens() bool {
	return d.Tokens
}
