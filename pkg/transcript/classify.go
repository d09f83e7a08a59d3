package transcript

import "strings"

// classifyMedia checks the body against the ordered indicator table.
// The first phrase contained anywhere in the body wins; later entries are
// never consulted, so a body carrying both a German and an English
// placeholder classifies by table order.
func classifyMedia(content string, table []MediaIndicator) (bool, MediaKind) {
	for _, ind := range table {
		if strings.Contains(content, ind.Phrase) {
			return true, ind.Kind
		}
	}
	return false, MediaNone
}

// isSystemMessage reports whether the body looks like an export-generated
// notification (encryption banner, membership change, number change).
// Matching is case-insensitive containment. System and media classification
// are independent; neither short-circuits the other.
func isSystemMessage(content string, phrases []string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range phrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
