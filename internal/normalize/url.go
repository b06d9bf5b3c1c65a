package normalize

import (
	"log"
	"net/url"
)

// trackingParams are stripped from website URLs before storage so that
// re-imports of the same tool from different campaigns dedupe correctly.
var trackingParams = []string{
	"ref",
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_content",
	"utm_term",
}

// CleanURL removes tracking query parameters from a URL and re-serializes it.
// Malformed URLs fail soft: the problem is logged and an empty string is
// returned, never an error.
func CleanURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		log.Printf("Invalid URL: %s", raw)
		return ""
	}

	query := parsed.Query()
	for _, param := range trackingParams {
		query.Del(param)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
