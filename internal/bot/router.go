package bot

import (
	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
)

// RouteAfterAgent inspects the latest message: a pending tool invocation
// routes to the matching tool node; otherwise the agent judged it has
// enough information and the run ends. When several tool calls would be
// eligible the earliest declared tool wins; the engine runs exactly one.
func RouteAfterAgent(state *domain.State) graph.NodeID {
	last := state.LastMessage()
	if last == nil || last.Role != domain.RoleAssistant || last.ToolCall == nil {
		return graph.End
	}
	switch last.ToolCall.Name {
	case ToolSearchDocuments:
		return NodeSearchDocuments
	case ToolWebSearch:
		return NodeWebSearch
	default:
		// Unknown tool requested: nothing can run it, so stop.
		return graph.End
	}
}

// RouteAfterTool picks the success path or the fallback path from a tool
// result. Sentinels are matched by exact value (wire contract): both
// "no relevant documents" and "service unavailable" fall back to
// background knowledge; anything else is usable context.
func RouteAfterTool(state *domain.State) graph.NodeID {
	last := state.LastMessage()
	if last == nil || last.Role != domain.RoleTool {
		return NodeBackground
	}
	if domain.IsRetrievalSentinel(last.Content) {
		return NodeBackground
	}
	return NodeSummarize
}

// RouteQuizChoice branches on the externally supplied quiz decision.
func RouteQuizChoice(state *domain.State) graph.NodeID {
	if state.QuizChoice == "yes" {
		return NodeGenerateQuiz
	}
	return NodeAskForNewTopic
}

// RouteNewTopicChoice branches on the externally supplied new-topic decision.
func RouteNewTopicChoice(state *domain.State) graph.NodeID {
	if state.NewTopicChoice == "yes" {
		return NodeAskTopic
	}
	return NodeGoodbye
}
