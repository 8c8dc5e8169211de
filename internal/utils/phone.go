package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Moroccan mobile numbers: +212 followed by an operator prefix in 5-7
// and eight more digits.
var moroccanMobilePattern = regexp.MustCompile(`^\+212[5-7]\d{8}$`)

// ValidatePhoneNumber validates and normalizes a Moroccan mobile
// number. Accepts the canonical +212XXXXXXXXX form as well as the
// local 0XXXXXXXXX and bare 212XXXXXXXXX spellings, with optional
// spaces or dashes. Returns the E.164 form.
func ValidatePhoneNumber(phoneNumber string) (string, error) {
	stripped := strings.ReplaceAll(phoneNumber, "-", "")
	stripped = strings.ReplaceAll(stripped, " ", "")

	switch {
	case strings.HasPrefix(stripped, "+212"):
		// already canonical
	case strings.HasPrefix(stripped, "212"):
		stripped = "+" + stripped
	case strings.HasPrefix(stripped, "0") && len(stripped) == 10:
		stripped = "+212" + stripped[1:]
	}

	if !moroccanMobilePattern.MatchString(stripped) {
		return "", fmt.Errorf("invalid Moroccan phone number format, expected +212XXXXXXXXX")
	}

	return stripped, nil
}
