package graph

import "researchbot/pkg/domain"

// Update is the partial state change produced by one node (or supplied by
// the caller as a resume patch). Nil pointer fields mean "leave unchanged";
// Messages are appended, never replaced.
type Update struct {
	Messages []domain.Message

	UserQuestion          *string
	Summary               *string
	Source                *domain.Source
	ComprehensionQuestion *string
	QuizChoice            *string
	QuizAnswer            *string
	NewTopicChoice        *string
}

// Apply merges the update into a state in place and returns the number of
// messages appended.
func (u *Update) Apply(state *domain.State) int {
	if u == nil {
		return 0
	}
	state.Messages = append(state.Messages, u.Messages...)
	if u.UserQuestion != nil {
		state.UserQuestion = *u.UserQuestion
	}
	if u.Summary != nil {
		state.Summary = *u.Summary
	}
	if u.Source != nil {
		state.Source = *u.Source
	}
	if u.ComprehensionQuestion != nil {
		state.ComprehensionQuestion = *u.ComprehensionQuestion
	}
	if u.QuizChoice != nil {
		state.QuizChoice = *u.QuizChoice
	}
	if u.QuizAnswer != nil {
		state.QuizAnswer = *u.QuizAnswer
	}
	if u.NewTopicChoice != nil {
		state.NewTopicChoice = *u.NewTopicChoice
	}
	return len(u.Messages)
}

// Ptr is a small helper for building updates from literals.
func Ptr[T any](v T) *T { return &v }
