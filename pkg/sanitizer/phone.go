package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var reNonDigit = regexp.MustCompile(`\D`)

// DigitsOnly drops every character that is not an ASCII digit. This is the
// form messaging deep links expect ("+91 98765-43210" -> "919876543210").
func DigitsOnly(phone string) string {
	return reNonDigit.ReplaceAllString(phone, "")
}

// NormalizePhone formats phone as E.164, interpreting numbers without a
// country code in region. Unparseable input yields "".
func NormalizePhone(phone string, region string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	parsedNumber, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return ""
	}
	return phonenumbers.Format(parsedNumber, phonenumbers.E164)
}
