package contact

// FormatPhone renders a stored digit string for display.
// 10 digits: (AAA) BBB-CCCC. 11 digits: +A (BBB) CCC-DDDD. Otherwise unchanged.
func FormatPhone(digits string) string {
	switch len(digits) {
	case 10:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	case 11:
		return "+" + digits[:1] + " (" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:]
	default:
		return digits
	}
}
