package session

import (
	"strings"

	"researchbot/pkg/domain"
)

// normalizeInput validates and canonicalizes a raw front-end value for the
// expected input kind. Choice kinds are always valid: anything that is not
// an affirmative coerces to the negative default, matching the lenient UX
// intent. Free-text kinds are rejected (second return false) when empty or,
// for quiz answers, shorter than minAnswerLen.
func normalizeInput(kind domain.InputKind, raw string, minAnswerLen int) (string, bool) {
	clean := strings.TrimSpace(raw)

	switch kind {
	case domain.InputQuizChoice, domain.InputNewTopicChoice:
		switch strings.ToLower(clean) {
		case "yes", "y":
			return "yes", true
		default:
			return "no", true
		}
	case domain.InputQuizAnswer:
		if len(clean) < minAnswerLen {
			return "", false
		}
		return clean, true
	case domain.InputNewQuestion:
		if clean == "" {
			return "", false
		}
		return clean, true
	default:
		return clean, clean != ""
	}
}
