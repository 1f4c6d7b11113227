package parsing

import (
	"strings"
	"unicode"

	"harvester/internal/domain/consts"
)

// SanitizeListName maps a user-supplied name onto a safe file stem.
//
// Letters, digits, '_' and '-' are kept, spaces become '_', everything else is
// dropped. An empty result becomes the default list name.
func SanitizeListName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return consts.DefaultListName
	}
	return b.String()
}
