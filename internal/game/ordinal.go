package game

import "strconv"

// Ordinal renders 1 → "1st", 2 → "2nd", 11 → "11th", 22 → "22nd" and so
// on, for audit log lines.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
