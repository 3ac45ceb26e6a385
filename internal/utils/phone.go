package utils

import "regexp"

// Saudi mobile numbers with country code, no leading +, e.g. 966512345678
var saudiPhonePattern = regexp.MustCompile(`^9665\d{8}$`)

// ValidSaudiPhone reports whether phone is a well-formed Saudi mobile number
func ValidSaudiPhone(phone string) bool {
	return saudiPhonePattern.MatchString(phone)
}
