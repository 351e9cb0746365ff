package util

import "strings"

// brazilCountryCode is prepended to national numbers before they are
// handed to the SMS provider.
const brazilCountryCode = "+55"

// FormatPhoneNumber normalizes a user-entered phone number to E.164.
// Numbers that already carry a "+" prefix pass through unchanged;
// everything else is stripped to digits and given the Brazilian
// country code.
func FormatPhoneNumber(phoneNumber string) string {
	if strings.HasPrefix(phoneNumber, "+") {
		return phoneNumber
	}

	var digits strings.Builder
	for _, r := range phoneNumber {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	return brazilCountryCode + digits.String()
}
