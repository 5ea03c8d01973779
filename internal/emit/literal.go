package emit

import "strconv"

// parseIntLiteral and parseFloatLiteral back the compile-time constant-
// folding path of `"123".toInt()` / `"1.5".toFloat()` on a literal receiver.
func parseIntLiteral(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloatLiteral(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
