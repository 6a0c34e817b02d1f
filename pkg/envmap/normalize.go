package envmap

import (
	"strings"
	"unicode"
)

// Normalize maps key onto a canonical environment variable name, applying in
// order: prefixing, camelCase word-boundary splitting, the case transform,
// charset replacement to [A-Za-z0-9_], underscore collapsing, and edge
// trimming. Same (key, options) in, same name out; no locale dependence.
func Normalize(key string, opts Options) string {
	if opts.Prefix != "" {
		key = opts.Prefix + "_" + key
	}
	key = splitWords(key)
	if opts.Upcase {
		key = strings.ToUpper(key)
	} else {
		key = strings.ToLower(key)
	}
	key = replaceUnsafe(key)
	key = collapseUnderscores(key)
	return trimUnderscore(key)
}

// splitWords inserts an underscore at camelCase word boundaries: before an
// uppercase letter preceded by a lowercase one, and before the last letter
// of an uppercase run that is followed by a lowercase letter (HTTPServer ->
// HTTP_Server). A rune scan with one character of lookahead avoids the
// regex-backreference subtleties of the usual two-pass substitution.
func splitWords(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev):
				b.WriteByte('_')
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func safeRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func replaceUnsafe(s string) string {
	// Fast path: already within the safe charset.
	clean := true
	for _, r := range s {
		if !safeRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if safeRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func collapseUnderscores(s string) string {
	if !strings.Contains(s, "__") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if r == '_' && prev == '_' {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func trimUnderscore(s string) string {
	s = strings.TrimPrefix(s, "_")
	return strings.TrimSuffix(s, "_")
}
