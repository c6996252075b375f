// Package ingest turns raw travel documents into embedded, searchable
// chunks. The pipeline is Chunk → Embed → Upsert; chunking is pure and
// deterministic, embedding goes through the rate-limited embedder.
package ingest

import (
	"fmt"
	"strings"
)

// Chunk splits text into overlapping segments of at most size runes.
// Boundaries prefer the last sentence end ('.' or '\n') in the window,
// but only when it falls past the window's midpoint so chunks never
// degenerate into fragments. Consecutive chunks share overlap runes of
// context. Text at or under size is returned as a single chunk.
//
// Indices are rune-based: guides carry currency symbols and accented
// place names, and splitting mid-codepoint would corrupt them.
func Chunk(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("overlap must be in [0, size), got %d with size %d", overlap, size)
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}, nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		} else {
			// Back off to a sentence boundary when one exists past
			// the midpoint of the window.
			window := runes[start:end]
			if bp := sentenceBreak(window); bp > size/2 {
				end = start + bp + 1
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - overlap
		if next <= start {
			// Overlap would revisit the same window; step past it so
			// the walk always terminates.
			next = end
		}
		start = next
	}

	return chunks, nil
}

// sentenceBreak returns the index of the last '.' or '\n' in window,
// or -1 when neither occurs.
func sentenceBreak(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '.' || window[i] == '\n' {
			return i
		}
	}
	return -1
}
