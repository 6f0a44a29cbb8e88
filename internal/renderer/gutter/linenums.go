package gutter

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := make([]byte, width-len(s))
	for i := range padding {
		padding[i] = ' '
	}
	return string(padding) + s
}

// CalculateWidth calculates the minimum width needed to display line numbers
// for the given line count.
func CalculateWidth(lineCount uint32, minWidth int) int {
	digits := countDigits(lineCount)
	if digits < minWidth {
		return minWidth
	}
	return digits
}

// FormatPosition formats a 0-indexed position as a 1-based "line:col".
func FormatPosition(line, col uint32) string {
	return FormatNumber(line+1) + ":" + FormatNumber(col+1)
}

// countDigits returns the number of digits needed to display a number.
func countDigits(n uint32) int {
	if n == 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}

// FormatNumber converts a number to a string.
func FormatNumber(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte // Max 10 digits for uint32
	i := len(buf)

	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[i:])
}
