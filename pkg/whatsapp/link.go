package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildLink composes a WhatsApp deep link carrying the provided message text.
// The text parameter is URL-encoded so literal newlines survive the handoff.
func BuildLink(baseURL, message string) (string, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return "", fmt.Errorf("whatsapp base url is required")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parsing whatsapp base url: %w", err)
	}

	query := parsed.Query()
	query.Set("text", message)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
