// ABOUTME: QueryResult is what the retriever returns for a single question
// ABOUTME: Holds ranked sources, their count and the formatted citation context
package models

// QueryResult holds up to k ranked sources for a question
type QueryResult struct {
	Question   string         `json:"question"`
	Sources    []SearchResult `json:"sources"`
	NumSources int            `json:"num_sources"`
	Context    string         `json:"context"`
}

// Empty reports whether the query matched nothing
func (r *QueryResult) Empty() bool {
	return r == nil || r.NumSources == 0
}
