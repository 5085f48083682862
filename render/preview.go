package render

import (
	"strings"
	"unicode"
)

// Preview window sizes, in characters.
const (
	BasePreviewLength      = 1800
	TutorialPreviewLength  = 2200
	ReferencePreviewLength = 1400

	// leadingContext is how much text is kept before the first matched term.
	leadingContext = 150

	ellipsis = "..."
)

var (
	tutorialKeywords  = []string{"tutorial", "guide", "workflow", "step", "example"}
	referenceKeywords = []string{"command", "syntax", "reference"}
)

// PreviewLength picks the window size for content: tutorial-like pages get
// a longer window, command references a shorter one. The tutorial check
// runs first.
func PreviewLength(content string) int {
	lower := strings.ToLower(content)
	switch {
	case containsAny(lower, tutorialKeywords):
		return TutorialPreviewLength
	case containsAny(lower, referenceKeywords):
		return ReferencePreviewLength
	default:
		return BasePreviewLength
	}
}

// Preview returns content unchanged when it fits the adaptive window.
// Otherwise it returns a window starting 150 characters before the first
// query term found in content (or at the start when none is found),
// prefixed and suffixed with "..." where text was cut.
func Preview(content, query string) string {
	maxLength := PreviewLength(content)

	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}

	start := 0
	if pos, ok := firstTermPosition(runes, query); ok {
		start = max(0, pos-leadingContext)
	}
	end := min(len(runes), start+maxLength)

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(runes[start:end]))
	if start+maxLength < len(runes) {
		b.WriteString(ellipsis)
	}
	return b.String()
}

// firstTermPosition scans the query terms in order and returns the rune
// offset of the first one that occurs anywhere in content.
func firstTermPosition(content []rune, query string) (int, bool) {
	lowered := make([]rune, len(content))
	for i, r := range content {
		lowered[i] = unicode.ToLower(r)
	}
	haystack := string(lowered)

	for _, term := range strings.Fields(strings.ToLower(query)) {
		if pos := strings.Index(haystack, term); pos >= 0 {
			return len([]rune(haystack[:pos])), true
		}
	}
	return 0, false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
