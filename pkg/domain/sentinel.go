package domain

// Protocol sentinels exchanged between the retrieval tool and the router.
// These exact strings are part of the wire contract; routing matches them
// by value, not by substring.
const (
	// NoRelevantDocuments signals that retrieval ran but nothing cleared
	// the relevance threshold.
	NoRelevantDocuments = "NO_RELEVANT_DOCUMENTS_FOUND"

	// ServiceUnavailable signals that the retrieval backend failed or was
	// never successfully initialized.
	ServiceUnavailable = "RAG_SERVICE_UNAVAILABLE"
)

// IsRetrievalSentinel reports whether a tool result is one of the in-band
// protocol signals rather than usable context.
func IsRetrievalSentinel(result string) bool {
	return result == NoRelevantDocuments || result == ServiceUnavailable
}
