package planner

import (
	"strings"
	"testing"
)

func TestBuildPromptWithContext(t *testing.T) {
	req := tokyoRequest()
	context := "Senso-ji Temple: free entry.\n\n---\n\nJR Pass: ¥29,650 for 7 days."

	prompt := BuildPrompt(req, context)

	if !strings.Contains(prompt, "PRIORITIZE") {
		t.Error("context branch should instruct the model to prioritize retrieved passages")
	}
	if !strings.Contains(prompt, "Senso-ji Temple") {
		t.Error("retrieved context missing from prompt")
	}
	if !strings.Contains(prompt, "Tokyo, Japan") {
		t.Error("destination missing from prompt")
	}
	if !strings.Contains(prompt, "3 days") {
		t.Error("duration missing from prompt")
	}
	if !strings.Contains(prompt, "$900") {
		t.Error("budget missing from prompt")
	}
	if !strings.Contains(prompt, "cultural") {
		t.Error("travel style missing from prompt")
	}
	if !strings.Contains(prompt, "Return ONLY valid JSON") {
		t.Error("JSON-only instruction missing")
	}
}

func TestBuildPromptWithoutContext(t *testing.T) {
	req := tokyoRequest()

	for _, context := range []string{"", NoContextSentinel} {
		prompt := BuildPrompt(req, context)
		if !strings.Contains(prompt, "No specific database information available") {
			t.Errorf("context %q: expected knowledge-only branch", context)
		}
		if strings.Contains(prompt, "PRIORITIZE information from the retrieved context") {
			t.Errorf("context %q: prioritize instruction leaked into empty-context prompt", context)
		}
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	req := tokyoRequest()
	if BuildPrompt(req, "some context.") != BuildPrompt(req, "some context.") {
		t.Error("prompt must be a pure function of its inputs")
	}
}

func TestBuildGuidePrompt(t *testing.T) {
	prompt := BuildGuidePrompt("Lisbon", "Portugal")

	for _, want := range []string{
		"Lisbon, Portugal",
		"Must-Visit Attractions",
		"Transportation",
		"Accommodation",
		"Food & Dining",
		"Travel Tips",
		"Hidden Gems",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("guide prompt missing section %q", want)
		}
	}
}
