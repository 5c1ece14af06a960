package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
)

func TestUpdateApply(t *testing.T) {
	t.Run("nil fields leave state unchanged", func(t *testing.T) {
		state := domain.NewState("headaches")
		state.Summary = "existing"

		n := (&graph.Update{}).Apply(state)
		assert.Zero(t, n)
		assert.Equal(t, "headaches", state.UserQuestion)
		assert.Equal(t, "existing", state.Summary)
	})

	t.Run("messages append", func(t *testing.T) {
		state := domain.NewState("headaches")
		state.Messages = []domain.Message{domain.UserMessage("headaches")}

		n := (&graph.Update{
			Messages: []domain.Message{domain.AssistantMessage("one"), domain.AssistantMessage("two")},
		}).Apply(state)
		assert.Equal(t, 2, n)
		assert.Len(t, state.Messages, 3)
		assert.Equal(t, "two", state.Messages[2].Content)
	})

	t.Run("set fields overwrite", func(t *testing.T) {
		state := domain.NewState("headaches")
		(&graph.Update{
			Summary: graph.Ptr("short answer"),
			Source:  graph.Ptr(domain.SourceWebSearch),
		}).Apply(state)
		assert.Equal(t, "short answer", state.Summary)
		assert.Equal(t, domain.SourceWebSearch, state.Source)
	})

	t.Run("explicit empty string clears a field", func(t *testing.T) {
		state := domain.NewState("headaches")
		state.QuizChoice = "yes"
		(&graph.Update{QuizChoice: graph.Ptr("")}).Apply(state)
		assert.Empty(t, state.QuizChoice)
	})

	t.Run("nil update is a no-op", func(t *testing.T) {
		state := domain.NewState("headaches")
		var u *graph.Update
		assert.Zero(t, u.Apply(state))
	})
}
