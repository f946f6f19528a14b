package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultSlugLen = 100
	slugFallback   = "item"
)

// Slugify dipakai untuk nama objek gambar: hanya [a-z0-9-], tanpa diakritik,
// maksimal maxLen rune (<=0 → 100). Hasil kosong jadi "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = defaultSlugLen
	}

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		plain = strings.ToLower(s)
	}

	var b strings.Builder
	pendingDash := false
	n := 0
	for _, r := range plain {
		if n >= maxLen {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
				n++
				if n >= maxLen {
					break
				}
			}
			pendingDash = false
			b.WriteRune(r)
			n++
			continue
		}
		pendingDash = true
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return slugFallback
	}
	return out
}
