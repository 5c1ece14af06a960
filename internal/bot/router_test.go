package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
)

func stateWith(msgs ...domain.Message) *domain.State {
	s := domain.NewState("topic")
	s.Messages = msgs
	return s
}

func TestRouteAfterAgent(t *testing.T) {
	t.Run("document search tool", func(t *testing.T) {
		msg := domain.AssistantMessage("")
		msg.ToolCall = &domain.ToolCall{ID: "1", Name: ToolSearchDocuments}
		assert.Equal(t, NodeSearchDocuments, RouteAfterAgent(stateWith(msg)))
	})

	t.Run("web search tool", func(t *testing.T) {
		msg := domain.AssistantMessage("")
		msg.ToolCall = &domain.ToolCall{ID: "1", Name: ToolWebSearch}
		assert.Equal(t, NodeWebSearch, RouteAfterAgent(stateWith(msg)))
	})

	t.Run("plain reply ends the run", func(t *testing.T) {
		assert.Equal(t, graph.End, RouteAfterAgent(stateWith(domain.AssistantMessage("done"))))
	})

	t.Run("unknown tool ends the run", func(t *testing.T) {
		msg := domain.AssistantMessage("")
		msg.ToolCall = &domain.ToolCall{ID: "1", Name: "teleport"}
		assert.Equal(t, graph.End, RouteAfterAgent(stateWith(msg)))
	})

	t.Run("empty log ends the run", func(t *testing.T) {
		assert.Equal(t, graph.End, RouteAfterAgent(stateWith()))
	})
}

func TestRouteAfterTool(t *testing.T) {
	toolMsg := func(content string) domain.Message {
		return domain.ToolResultMessage(&domain.ToolCall{ID: "1", Name: ToolSearchDocuments}, content)
	}

	t.Run("usable context summarizes", func(t *testing.T) {
		assert.Equal(t, NodeSummarize, RouteAfterTool(stateWith(toolMsg("some retrieved text"))))
	})

	t.Run("no-documents sentinel falls back", func(t *testing.T) {
		assert.Equal(t, NodeBackground, RouteAfterTool(stateWith(toolMsg(domain.NoRelevantDocuments))))
	})

	t.Run("unavailable sentinel falls back", func(t *testing.T) {
		assert.Equal(t, NodeBackground, RouteAfterTool(stateWith(toolMsg(domain.ServiceUnavailable))))
	})

	t.Run("sentinel match is exact", func(t *testing.T) {
		// A result merely containing the sentinel text is real content.
		assert.Equal(t, NodeSummarize, RouteAfterTool(stateWith(toolMsg("note: NO_RELEVANT_DOCUMENTS_FOUND was mentioned"))))
	})
}

func TestChoiceRoutes(t *testing.T) {
	t.Run("quiz yes", func(t *testing.T) {
		s := domain.NewState("t")
		s.QuizChoice = "yes"
		assert.Equal(t, NodeGenerateQuiz, RouteQuizChoice(s))
	})
	t.Run("quiz anything else", func(t *testing.T) {
		s := domain.NewState("t")
		s.QuizChoice = "no"
		assert.Equal(t, NodeAskForNewTopic, RouteQuizChoice(s))
	})
	t.Run("new topic yes", func(t *testing.T) {
		s := domain.NewState("t")
		s.NewTopicChoice = "yes"
		assert.Equal(t, NodeAskTopic, RouteNewTopicChoice(s))
	})
	t.Run("new topic no", func(t *testing.T) {
		s := domain.NewState("t")
		s.NewTopicChoice = "no"
		assert.Equal(t, NodeGoodbye, RouteNewTopicChoice(s))
	})
}
