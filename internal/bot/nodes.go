package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
)

// searchArgs is the decoded argument shape of both search tools.
type searchArgs struct {
	Query string `mapstructure:"query"`
}

// entry seeds the conversation log with the current topic.
func (b *Bot) entry(ctx context.Context, state *domain.State) (*graph.Update, error) {
	if strings.TrimSpace(state.UserQuestion) == "" {
		return nil, fmt.Errorf("entry node requires a user question")
	}
	return &graph.Update{
		Messages: []domain.Message{domain.UserMessage(state.UserQuestion)},
	}, nil
}

// agent asks the model for the next move: either a tool invocation or a
// direct reply.
func (b *Bot) agent(ctx context.Context, state *domain.State) (*graph.Update, error) {
	reply, err := b.model.Complete(ctx, systemPrompt, state.Messages, b.tools())
	if err != nil {
		return nil, fmt.Errorf("agent completion: %w", err)
	}
	return &graph.Update{Messages: []domain.Message{reply}}, nil
}

// searchDocuments runs the curated-corpus search tool. Backend failures are
// already converted to sentinels inside the retrieval service, so the tool
// result is always a plain string.
func (b *Bot) searchDocuments(ctx context.Context, state *domain.State) (*graph.Update, error) {
	call, query, err := b.pendingQuery(state)
	if err != nil {
		return nil, err
	}
	result := b.retrieval.Search(ctx, query)
	return &graph.Update{
		Messages: []domain.Message{domain.ToolResultMessage(call, result)},
	}, nil
}

// webSearch runs the open web search tool. Failures degrade to the
// unavailable sentinel so routing falls back to background knowledge.
func (b *Bot) webSearch(ctx context.Context, state *domain.State) (*graph.Update, error) {
	call, query, err := b.pendingQuery(state)
	if err != nil {
		return nil, err
	}

	result := domain.ServiceUnavailable
	if b.web != nil {
		digest, err := b.web.Search(ctx, query)
		if err != nil {
			b.logger.WarnContext(ctx, "web search failed", "err", err, "query", query)
		} else if strings.TrimSpace(digest) == "" {
			result = domain.NoRelevantDocuments
		} else {
			result = digest
		}
	}
	return &graph.Update{
		Messages: []domain.Message{domain.ToolResultMessage(call, result)},
	}, nil
}

// pendingQuery extracts the tool call the agent just requested and its
// query argument, defaulting to the current topic when the argument is
// missing or malformed.
func (b *Bot) pendingQuery(state *domain.State) (*domain.ToolCall, string, error) {
	last := state.LastMessage()
	if last == nil || last.ToolCall == nil {
		return nil, "", fmt.Errorf("tool node reached without a pending tool call")
	}
	var args searchArgs
	if err := mapstructure.Decode(last.ToolCall.Args, &args); err != nil || strings.TrimSpace(args.Query) == "" {
		return last.ToolCall, state.UserQuestion, nil
	}
	return last.ToolCall, args.Query, nil
}

// summarize turns a successful tool result into the research summary,
// tagging provenance by which tool produced the context.
func (b *Bot) summarize(ctx context.Context, state *domain.State) (*graph.Update, error) {
	last := state.LastMessage()
	if last == nil || last.Role != domain.RoleTool {
		return nil, fmt.Errorf("summarize reached without a tool result")
	}

	source := domain.SourceRetrieval
	prompt := fmt.Sprintf(summarizePrompt, state.UserQuestion, last.Content)
	prefix := PrefixRetrieval
	if last.ToolName == ToolWebSearch {
		source = domain.SourceWebSearch
		prompt = fmt.Sprintf(webSummarizePrompt, state.UserQuestion, last.Content)
		prefix = PrefixWebSearch
	}

	reply, err := b.model.Complete(ctx, systemPrompt,
		[]domain.Message{domain.UserMessage(prompt)}, nil)
	if err != nil {
		return nil, fmt.Errorf("summarize completion: %w", err)
	}

	summary := strings.TrimSpace(reply.Content)
	return &graph.Update{
		Messages: []domain.Message{domain.AssistantMessage(prefix + summary)},
		Summary:  graph.Ptr(summary),
		Source:   graph.Ptr(source),
	}, nil
}

// backgroundKnowledge answers from the model's own knowledge when nothing
// relevant could be retrieved.
func (b *Bot) backgroundKnowledge(ctx context.Context, state *domain.State) (*graph.Update, error) {
	prompt := fmt.Sprintf(backgroundPrompt, state.UserQuestion)
	reply, err := b.model.Complete(ctx, systemPrompt,
		[]domain.Message{domain.UserMessage(prompt)}, nil)
	if err != nil {
		return nil, fmt.Errorf("background completion: %w", err)
	}

	summary := strings.TrimSpace(reply.Content)
	return &graph.Update{
		Messages: []domain.Message{domain.AssistantMessage(PrefixBackground + summary)},
		Summary:  graph.Ptr(summary),
		Source:   graph.Ptr(domain.SourceBackground),
	}, nil
}

// askForQuiz records the externally supplied quiz decision in the log.
// The value itself arrives as a resume patch before this node runs.
func (b *Bot) askForQuiz(ctx context.Context, state *domain.State) (*graph.Update, error) {
	return &graph.Update{
		Messages: []domain.Message{domain.UserMessage(state.QuizChoice)},
	}, nil
}

// generateQuiz derives one comprehension question from the summary alone.
func (b *Bot) generateQuiz(ctx context.Context, state *domain.State) (*graph.Update, error) {
	if strings.TrimSpace(state.Summary) == "" {
		return nil, fmt.Errorf("generate quiz requires a summary")
	}
	prompt := fmt.Sprintf(generateQuizPrompt, state.Summary)
	reply, err := b.model.Complete(ctx, "",
		[]domain.Message{domain.UserMessage(prompt)}, nil)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	question := strings.TrimSpace(reply.Content)
	return &graph.Update{
		Messages:              []domain.Message{domain.AssistantMessage(question)},
		ComprehensionQuestion: graph.Ptr(question),
	}, nil
}

// gradeQuiz grades the supplied answer against exactly (question, summary,
// answer); it never reads the rest of the message history, so nothing
// outside the summary can leak into the grade.
func (b *Bot) gradeQuiz(ctx context.Context, state *domain.State) (*graph.Update, error) {
	prompt := fmt.Sprintf(gradeQuizPrompt, state.Summary, state.ComprehensionQuestion, state.QuizAnswer)
	reply, err := b.model.Complete(ctx, "",
		[]domain.Message{domain.UserMessage(prompt)}, nil)
	if err != nil {
		return nil, fmt.Errorf("quiz grading: %w", err)
	}

	return &graph.Update{
		Messages: []domain.Message{
			domain.UserMessage(state.QuizAnswer),
			domain.AssistantMessage(strings.TrimSpace(reply.Content)),
		},
	}, nil
}

// askForNewTopic records the externally supplied continue/stop decision.
func (b *Bot) askForNewTopic(ctx context.Context, state *domain.State) (*graph.Update, error) {
	return &graph.Update{
		Messages: []domain.Message{domain.UserMessage(state.NewTopicChoice)},
	}, nil
}

// askTopicQuestion clears the per-cycle decision fields before looping back
// to entry with the freshly patched topic. The session controller normally
// replaces the whole thread lineage instead of running this node; it exists
// for callers driving the executor directly.
func (b *Bot) askTopicQuestion(ctx context.Context, state *domain.State) (*graph.Update, error) {
	empty := ""
	return &graph.Update{
		QuizChoice:     &empty,
		QuizAnswer:     &empty,
		NewTopicChoice: &empty,
	}, nil
}

// goodbye closes the conversation.
func (b *Bot) goodbye(ctx context.Context, state *domain.State) (*graph.Update, error) {
	return &graph.Update{
		Messages: []domain.Message{domain.AssistantMessage(goodbyeText)},
	}, nil
}
