package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders is the canonical set of HTTP header names (lowercase)
// that carry credentials and must never reach a log sink. The middleware
// RedactHeaders utility reads the same set, so the two layers cannot
// silently drift apart.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

// Raw-value patterns caught even when a credential hides inside an
// otherwise harmless string field.
var (
	// "Bearer <token>" wherever it appears.
	reBearer = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// Raw access tokens (header.payload.signature). Segments must be at
	// least 10 characters so dotted version strings pass through.
	reAccessToken = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	// Inline "api_key=<value>" / "apikey:<value>" pairs.
	reInlineKey = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)
)

// newRedactAttr builds the masq ReplaceAttr function installed on every
// slog handler. Field names cover the structured path (password hashes,
// signing secrets, tokens, the sensitive headers); the regexes catch raw
// values that slip past call sites.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),

		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),

		masq.WithRegex(reBearer),
		masq.WithRegex(reAccessToken),
		masq.WithRegex(reInlineKey),
	}
	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}

	return masq.New(opts...)
}
