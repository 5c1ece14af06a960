package bot

import (
	"log/slog"

	"researchbot/internal/logging"
	"researchbot/internal/rag"
	"researchbot/pkg/graph"
	"researchbot/pkg/ports"
)

// Node identifiers of the canonical research-dialogue graph.
const (
	NodeEntry           graph.NodeID = "entry"
	NodeAgent           graph.NodeID = "agent"
	NodeSearchDocuments graph.NodeID = "search_documents"
	NodeWebSearch       graph.NodeID = "web_search"
	NodeBackground      graph.NodeID = "background_knowledge"
	NodeSummarize       graph.NodeID = "summarize"
	NodeAskForQuiz      graph.NodeID = "ask_for_quiz"
	NodeGenerateQuiz    graph.NodeID = "generate_quiz"
	NodeGradeQuiz       graph.NodeID = "grade_quiz"
	NodeAskForNewTopic  graph.NodeID = "ask_for_new_topic"
	NodeAskTopic        graph.NodeID = "ask_topic_question"
	NodeGoodbye         graph.NodeID = "goodbye"
)

// InterruptNodes are the graph positions requiring externally supplied
// input; the executor halts before running them.
var InterruptNodes = []graph.NodeID{
	NodeAskForQuiz,
	NodeGradeQuiz,
	NodeAskForNewTopic,
	NodeAskTopic,
}

// Bot holds the collaborators the node functions close over.
type Bot struct {
	model     ports.ModelClient
	retrieval *rag.Service
	web       ports.WebSearcher
	logger    *slog.Logger
}

// Option configures the Bot.
type Option func(*Bot)

// WithWebSearcher enables the open web search tool. Without it the agent is
// offered the document search tool only.
func WithWebSearcher(web ports.WebSearcher) Option {
	return func(b *Bot) { b.web = web }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New assembles a Bot over a model client and retrieval service.
func New(model ports.ModelClient, retrieval *rag.Service, opts ...Option) *Bot {
	b := &Bot{
		model:     model,
		retrieval: retrieval,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildGraph compiles the canonical dialogue workflow.
//
//	START -> entry -> agent -> {search_documents | web_search | END}
//	search_documents -> {summarize | background_knowledge}   (sentinel routing)
//	web_search       -> {summarize | background_knowledge}   (sentinel routing)
//	summarize / background_knowledge -> ask_for_quiz
//	ask_for_quiz -> {generate_quiz | ask_for_new_topic}
//	generate_quiz -> grade_quiz -> ask_for_new_topic
//	ask_for_new_topic -> {ask_topic_question | goodbye}
//	ask_topic_question -> entry        (fresh topic loop)
//	goodbye -> END
func (b *Bot) BuildGraph() (*graph.Graph, error) {
	builder := graph.NewBuilder().
		SetEntry(NodeEntry).
		AddNode(NodeEntry, b.entry).
		AddNode(NodeAgent, b.agent).
		AddNode(NodeSearchDocuments, b.searchDocuments).
		AddNode(NodeWebSearch, b.webSearch).
		AddNode(NodeBackground, b.backgroundKnowledge).
		AddNode(NodeSummarize, b.summarize).
		AddNode(NodeAskForQuiz, b.askForQuiz).
		AddNode(NodeGenerateQuiz, b.generateQuiz).
		AddNode(NodeGradeQuiz, b.gradeQuiz).
		AddNode(NodeAskForNewTopic, b.askForNewTopic).
		AddNode(NodeAskTopic, b.askTopicQuestion).
		AddNode(NodeGoodbye, b.goodbye).
		AddEdge(NodeEntry, NodeAgent).
		AddConditionalEdge(NodeAgent, RouteAfterAgent,
			NodeSearchDocuments, NodeWebSearch, graph.End).
		AddConditionalEdge(NodeSearchDocuments, RouteAfterTool,
			NodeSummarize, NodeBackground).
		AddConditionalEdge(NodeWebSearch, RouteAfterTool,
			NodeSummarize, NodeBackground).
		AddEdge(NodeSummarize, NodeAskForQuiz).
		AddEdge(NodeBackground, NodeAskForQuiz).
		AddConditionalEdge(NodeAskForQuiz, RouteQuizChoice,
			NodeGenerateQuiz, NodeAskForNewTopic).
		AddEdge(NodeGenerateQuiz, NodeGradeQuiz).
		AddEdge(NodeGradeQuiz, NodeAskForNewTopic).
		AddConditionalEdge(NodeAskForNewTopic, RouteNewTopicChoice,
			NodeAskTopic, NodeGoodbye).
		AddEdge(NodeAskTopic, NodeEntry).
		AddEdge(NodeGoodbye, graph.End).
		InterruptBefore(InterruptNodes...)

	return builder.Compile()
}

// tools returns the tool definitions offered to the model.
func (b *Bot) tools() []ports.ToolDef {
	defs := []ports.ToolDef{
		{
			Name:        ToolSearchDocuments,
			Description: "Search the curated health documents for passages relevant to a query.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The search query",
					},
				},
				"required": []string{"query"},
			},
		},
	}
	if b.web != nil {
		defs = append(defs, ports.ToolDef{
			Name:        ToolWebSearch,
			Description: "Return top web search results for a query not covered by the health documents.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The search query",
					},
				},
				"required": []string{"query"},
			},
		})
	}
	return defs
}
