package bot

// Tool names offered to the model. The names are part of the contract with
// the model client adapter and must match the ToolDef registrations below.
const (
	ToolSearchDocuments = "search_health_documents"
	ToolWebSearch       = "web_search"
)

// systemPrompt frames the dialogue. Derived from the curated-corpus
// research-assistant configuration.
const systemPrompt = `You are a helpful health research assistant. You have access to:

1. Health Document Search: search through curated health documents covering
   tension headaches and migraines, lower back pain and neck pain, and
   stress management for pain relief. Use this FIRST for questions about
   these topics.
2. Web Search: for topics not covered in the health documents.

Always prioritize the health document search, as this information is curated
and reliable. Your goal is to help users research health topics, provide
summaries, and offer comprehension quizzes to test their understanding.

This information is for educational purposes only and should not replace
professional medical advice.`

// summarizePrompt asks for a summary over retrieved context.
const summarizePrompt = `Using only the context below, write a clear and informative summary that answers the user's question. Do not invent facts that are not in the context.

Question: %s

Context:
%s`

// webSummarizePrompt asks for a summary over web search results.
const webSummarizePrompt = `Using the web search results below, write a clear and informative summary that answers the user's question. Synthesize the information into a coherent response and cite your sources.

Question: %s

Search results:
%s`

// backgroundPrompt asks for an answer from the model's own knowledge when
// neither the corpus nor web search produced usable context.
const backgroundPrompt = `No curated documents matched the user's question. Answer from your general knowledge about health topics. Be clear and informative, and suggest consulting a healthcare professional for personalized medical advice.

Question: %s`

// generateQuizPrompt produces exactly one comprehension question about the
// summary, with no answer key embedded.
const generateQuizPrompt = `Write exactly one short comprehension question that tests understanding of the summary below. Output only the question itself, with no answer, hints, or preamble.

Summary:
%s`

// gradeQuizPrompt grades an answer leniently against the summary alone.
const gradeQuizPrompt = `Grade the user's answer to a comprehension question. Use only the summary below as the reference; be lenient, a short answer that captures the gist deserves a good grade.

Respond with a letter grade from {A, B, C, D, E, F} on the first line, then a short justification citing the summary.

Summary:
%s

Question: %s

Answer: %s`

// Provenance prefixes inserted into the summary message per information
// source (part of the engine <-> front end protocol).
const (
	PrefixRetrieval  = "Based on our curated health documents:\n\n"
	PrefixBackground = "Based on general knowledge (no curated documents matched your question):\n\n"
	PrefixWebSearch  = "Based on web search results:\n\n"
)

// goodbyeText closes the conversation.
const goodbyeText = "Thanks for researching with me today. Take care, and remember this information is educational, not medical advice. Goodbye!"

// Interrupt prompts surfaced as input requests. Fixed per node.
const (
	promptQuizChoice     = "Would you like to take a quick quiz about this summary?"
	promptQuizAnswer     = "Here is your comprehension question. Please type your answer."
	promptNewTopicChoice = "Would you like to research another topic?"
	promptNewQuestion    = "What topic would you like to research next?"
)
