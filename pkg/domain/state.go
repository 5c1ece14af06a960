package domain

// Source tags the provenance of the current summary.
type Source string

const (
	SourceRetrieval  Source = "retrieval"
	SourceBackground Source = "background-knowledge"
	SourceWebSearch  Source = "web-search"
)

// State is the single mutable record threaded through the workflow graph
// for one conversation. The message log grows monotonically within one
// thread lineage; the engine never reorders or truncates it.
type State struct {
	// Messages is the ordered, append-only conversation log.
	Messages []Message `json:"messages"`

	// UserQuestion is the current research topic.
	UserQuestion string `json:"user_question"`

	// Summary is the last-produced research summary, empty until produced.
	Summary string `json:"summary,omitempty"`

	// Source identifies the provenance of Summary. Set exactly when
	// Summary is (re)written.
	Source Source `json:"source,omitempty"`

	// ComprehensionQuestion is the last-generated quiz prompt.
	ComprehensionQuestion string `json:"comprehension_question,omitempty"`

	// Externally supplied decision fields, overwritten each cycle.
	QuizChoice     string `json:"quiz_choice,omitempty"`
	QuizAnswer     string `json:"quiz_answer,omitempty"`
	NewTopicChoice string `json:"new_topic_choice,omitempty"`
}

// NewState creates a clean conversation state for a topic.
func NewState(topic string) *State {
	return &State{
		UserQuestion: topic,
		Messages:     []Message{},
	}
}

// Clone returns a copy safe for independent mutation. Messages are copied
// shallowly; they are treated as immutable once appended.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Messages = make([]Message, len(s.Messages))
	copy(next.Messages, s.Messages)
	return &next
}

// LastMessage returns the most recent log entry, or nil if the log is empty.
func (s *State) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}
