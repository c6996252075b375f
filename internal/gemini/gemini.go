// Package gemini implements the pipeline's embedding and generation
// contracts on top of Genkit's Google AI plugin.
//
// Both clients are stateless wrappers around shared Genkit resources and
// are safe for concurrent use. Failures surface as the package sentinels
// ErrEmbedding and ErrGeneration so callers can classify them with
// errors.Is; neither client retries.
package gemini

import "errors"

var (
	// ErrEmbedding indicates an embedding call failed or returned
	// malformed output.
	ErrEmbedding = errors.New("embedding service failed")

	// ErrGeneration indicates a chat-completion call failed. Transport,
	// auth, and rate-limit failures all surface here.
	ErrGeneration = errors.New("generation service failed")
)
