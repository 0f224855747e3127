package sanitizer

import "math/rand"

const (
	DefaultRandomLength = 8

	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateRandomString samples length characters uniformly from the 62
// character alphanumeric alphabet. The source is math/rand and therefore
// predictable: use it for slug suffixes, never for credentials.
func GenerateRandomString(length int) string {
	if length <= 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphanumeric[rand.Intn(len(alphanumeric))]
	}
	return string(b)
}
