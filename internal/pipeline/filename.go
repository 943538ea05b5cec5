package pipeline

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// filenamePrefix marks archive entries produced by this service.
const filenamePrefix = "AG"

// asciiFold strips combining marks so accented titles still yield portable
// archive names.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// BuildFilename derives the deterministic archive entry name for one mockup
// output. Within the same day the result is byte-identical for identical
// inputs. Spaces in the mockup type become underscores; no component may
// contribute a path separator.
func BuildFilename(collection, title, mockupType string, now time.Time) string {
	date := now.Format("2006-01-02")
	typePart := strings.Join(strings.Fields(sanitizeComponent(mockupType)), "_")
	return fmt.Sprintf("%s_%s_%s_%s_MOCKUP_%s.png",
		filenamePrefix, sanitizeComponent(collection), sanitizeComponent(title), date, typePart)
}

func sanitizeComponent(s string) string {
	if folded, _, err := transform.String(asciiFold, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '/' || r == '\\' || r == ':':
			b.WriteRune('-')
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
