package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"researchbot/pkg/domain"
)

func TestNormalizeInput(t *testing.T) {
	cases := []struct {
		name  string
		kind  domain.InputKind
		raw   string
		want  string
		valid bool
	}{
		{"choice yes", domain.InputQuizChoice, "yes", "yes", true},
		{"choice y shorthand", domain.InputQuizChoice, "y", "yes", true},
		{"choice case and padding", domain.InputQuizChoice, "  YES ", "yes", true},
		{"choice no", domain.InputQuizChoice, "no", "no", true},
		{"choice gibberish coerces to no", domain.InputQuizChoice, "whatever", "no", true},
		{"choice empty coerces to no", domain.InputNewTopicChoice, "", "no", true},

		{"answer long enough", domain.InputQuizAnswer, "abc", "abc", true},
		{"answer trimmed then measured", domain.InputQuizAnswer, "  ab  ", "", false},
		{"answer too short", domain.InputQuizAnswer, "ab", "", false},
		{"answer empty", domain.InputQuizAnswer, "", "", false},

		{"question non-empty", domain.InputNewQuestion, " sleep ", "sleep", true},
		{"question empty", domain.InputNewQuestion, "   ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, valid := normalizeInput(tc.kind, tc.raw, 3)
			assert.Equal(t, tc.valid, valid)
			if valid {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
