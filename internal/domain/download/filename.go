package download

import (
	"fmt"
	"strings"
	"time"

	"mediagrab-server/utils/idgen"
)

// maxNameLen caps display filenames, counted in runes.
const maxNameLen = 150

const forbiddenNameChars = `<>:"/\|?*`

// Sanitize strips filesystem-reserved characters, replaces control bytes
// with spaces, collapses whitespace runs, and caps the result at 150 runes.
// Idempotent: sanitizing an already sanitized name returns it unchanged.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case strings.ContainsRune(forbiddenNameChars, r):
		case r < 0x20 || r == 0x7f:
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(cleaned)
	if len(runes) > maxNameLen {
		cleaned = strings.TrimSpace(string(runes[:maxNameLen]))
	}
	return cleaned
}

// FallbackName returns a generated name for titles that sanitize to nothing.
func FallbackName() string {
	name, err := idgen.GenerateSecureID("file", 8)
	if err != nil {
		return fmt.Sprintf("file_%d", time.Now().UnixNano())
	}
	return name
}

// HumanSize renders a byte count with two-decimal precision and 1024 unit
// steps, "0 B" for zero or unknown sizes.
func HumanSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f TB", value)
}
