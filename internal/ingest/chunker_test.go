package ingest

import (
	"strings"
	"testing"
	"time"
)

func TestChunkShortText(t *testing.T) {
	text := "Tokyo is a vibrant metropolis."
	chunks, err := Chunk(text, 1000, 200)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("short text should be returned unchanged, got %q", chunks[0])
	}
}

func TestChunkExactSize(t *testing.T) {
	text := strings.Repeat("a", 1000)
	chunks, err := Chunk(text, 1000, 200)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Errorf("text of exactly chunk size should yield 1 chunk, got %d", len(chunks))
	}
}

func TestChunkLongDocument(t *testing.T) {
	// 25 sentences of 100 runes each: 2500 runes at size 1000 / overlap
	// 200 must yield at least 3 chunks.
	sentence := strings.Repeat("x", 98) + ". "
	text := strings.Repeat(sentence, 25)

	chunks, err := Chunk(text, 1000, 200)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) < 3 {
		t.Errorf("expected at least 3 chunks for 2500 runes, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 1000 {
			t.Errorf("chunk %d exceeds size: %d runes", i, n)
		}
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunkSentenceBoundary(t *testing.T) {
	// A period past the midpoint of the window should become the break.
	text := strings.Repeat("a", 70) + "." + strings.Repeat("b", 100)
	chunks, err := Chunk(text, 100, 10)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at the sentence boundary, got %q", chunks[0])
	}
}

func TestChunkMultiByteRunes(t *testing.T) {
	// Currency symbols and kana must never be split mid-codepoint.
	text := strings.Repeat("¥2,100 東京 café. ", 200)
	chunks, err := Chunk(text, 100, 20)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	for i, c := range chunks {
		if !strings.Contains(c, "¥") && !strings.Contains(c, "東") {
			continue
		}
		if strings.ContainsRune(c, '�') {
			t.Errorf("chunk %d contains replacement character: %q", i, c)
		}
	}
}

func TestChunkCoverage(t *testing.T) {
	// Every rune of the input (modulo trimmed whitespace) appears in
	// some chunk: concatenated chunks must contain each sentence.
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("Sentence number ")
		b.WriteByte(byte('a' + i%26))
		b.WriteString(" about travel plans and local attractions worth visiting today.\n")
	}
	text := b.String()

	chunks, err := Chunk(text, 300, 50)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	joined := strings.Join(chunks, "\n")
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if !strings.Contains(joined, strings.TrimSpace(line)) {
			t.Fatalf("line lost during chunking: %q", line)
		}
	}
}

func TestChunkTermination(t *testing.T) {
	// A boundary that lands inside the overlap window must not stall
	// the walk. Periods every 60 runes with overlap 45 and size 100
	// forces end-overlap at or before start without the guard.
	sentence := strings.Repeat("y", 59) + "."
	text := strings.Repeat(sentence, 40)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := Chunk(text, 100, 45); err != nil {
			t.Errorf("Chunk failed: %v", err)
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Chunk did not terminate")
	}
}

func TestChunkInvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Chunk("some text", tt.size, tt.overlap); err == nil {
				t.Error("expected error")
			}
		})
	}
}
