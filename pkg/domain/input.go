package domain

// InputKind identifies which externally supplied value a suspension is
// waiting for.
type InputKind string

const (
	InputQuizChoice     InputKind = "quiz-choice"
	InputQuizAnswer     InputKind = "quiz-answer"
	InputNewTopicChoice InputKind = "new-topic-choice"
	InputNewQuestion    InputKind = "new-question"
)

// InputRequest describes a pending suspension for the front end: what to
// ask, what kind of value is expected, and the allowed literal choices
// (empty means free text). Never persisted.
type InputRequest struct {
	Prompt  string    `json:"prompt"`
	Kind    InputKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
}

// FreeText reports whether the request accepts arbitrary text.
func (r InputRequest) FreeText() bool {
	return len(r.Options) == 0
}
