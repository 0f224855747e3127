// Package messaging builds the deep links that hand a customer inquiry off
// to an external chat app.
package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"storefront/pkg/sanitizer"
)

const WhatsAppHost = "wa.me"

// componentUnescaper restores the characters encodeURIComponent leaves alone
// but url.QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s the way browsers encode a URI component.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// BuildLink returns https://<host>/<digits>?text=<message>. Every non-digit
// is stripped from phone, so "+91 98765-43210" becomes "919876543210".
func BuildLink(host, phone, message string) string {
	return "https://" + host + "/" + sanitizer.DigitsOnly(phone) + "?text=" + EscapeComponent(message)
}

func WhatsAppLink(phone, message string) string {
	return BuildLink(WhatsAppHost, phone, message)
}

// InquiryMessage is the pre-filled text sent when a customer asks about a
// product. price and productURL are optional.
func InquiryMessage(productName, price, productURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi! I'm interested in %s", strings.TrimSpace(productName))
	if price != "" {
		fmt.Fprintf(&b, " (%s)", price)
	}
	b.WriteString(".")
	if productURL != "" {
		fmt.Fprintf(&b, " %s", productURL)
	}
	return b.String()
}
