package bot

import (
	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
)

// inputRequests maps each interrupt node to the fixed request surfaced to
// the front end while execution is parked before it.
var inputRequests = map[graph.NodeID]domain.InputRequest{
	NodeAskForQuiz: {
		Prompt:  promptQuizChoice,
		Kind:    domain.InputQuizChoice,
		Options: []string{"yes", "no"},
	},
	NodeGradeQuiz: {
		Prompt: promptQuizAnswer,
		Kind:   domain.InputQuizAnswer,
	},
	NodeAskForNewTopic: {
		Prompt:  promptNewTopicChoice,
		Kind:    domain.InputNewTopicChoice,
		Options: []string{"yes", "no"},
	},
	NodeAskTopic: {
		Prompt: promptNewQuestion,
		Kind:   domain.InputNewQuestion,
	},
}

// InputRequestFor returns the input request for an interrupt node.
func InputRequestFor(node graph.NodeID) (domain.InputRequest, bool) {
	req, ok := inputRequests[node]
	return req, ok
}

// PatchFor translates a validated input value into the resume patch for the
// interrupt node that requested it.
func PatchFor(node graph.NodeID, value string) *graph.Update {
	switch node {
	case NodeAskForQuiz:
		return &graph.Update{QuizChoice: graph.Ptr(value)}
	case NodeGradeQuiz:
		return &graph.Update{QuizAnswer: graph.Ptr(value)}
	case NodeAskForNewTopic:
		return &graph.Update{NewTopicChoice: graph.Ptr(value)}
	case NodeAskTopic:
		return &graph.Update{UserQuestion: graph.Ptr(value)}
	default:
		return &graph.Update{}
	}
}
