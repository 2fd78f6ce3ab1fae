// ABOUTME: Error taxonomy for the retrieval core
// ABOUTME: Callers match these sentinels with errors.Is
package core

import "errors"

var (
	// ErrNotFound means the source document does not exist
	ErrNotFound = errors.New("not found")
	// ErrInitialization means the index could not be loaded or persisted
	ErrInitialization = errors.New("initialization failed")
	// ErrProvider means the embedding provider failed
	ErrProvider = errors.New("embedding provider error")
	// ErrIndex means similarity search failed
	ErrIndex = errors.New("index error")
	// ErrNotReady means a query arrived before BuildOrLoad succeeded
	ErrNotReady = errors.New("retriever not ready")
	// ErrTimeout means a query exceeded its deadline
	ErrTimeout = errors.New("query timed out")
	// ErrContent means document text could not be decoded
	ErrContent = errors.New("content error")
)
