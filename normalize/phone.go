package normalize

import (
	"strings"
)

// NormalizePhone reduces a raw phone cell to "+<digits>".
//
//	12 digits starting 91 -> India, kept as is
//	10 digits             -> US, +1 prefixed
//	11 digits starting 1  -> US with country code
//	any other length >=10 -> kept as best effort
//
// Anything shorter, empty or the literal "NA" is rejected.
func NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "NA") {
		return "", errParse("phone missing")
	}

	var b strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return "+" + digits, nil
	case len(digits) == 10:
		return "+1" + digits, nil
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits, nil
	case len(digits) >= 10:
		return "+" + digits, nil
	default:
		return "", errParse("phone %q has too few digits", raw)
	}
}
