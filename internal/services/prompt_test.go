package services

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt_TokenBands(t *testing.T) {
	cases := []struct {
		name      string
		maxTokens int
		want      string
	}{
		{name: "minimal_band", maxTokens: 500, want: "single example"},
		{name: "minimal_band_edge", maxTokens: 799, want: "single example"},
		{name: "balanced_band_low_edge", maxTokens: 800, want: "2 concrete examples"},
		{name: "balanced_band", maxTokens: 1500, want: "2 concrete examples"},
		{name: "balanced_band_high_edge", maxTokens: 2500, want: "2 concrete examples"},
		{name: "comprehensive_band", maxTokens: 3000, want: "comprehensive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildSystemPrompt(tc.maxTokens)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("BuildSystemPrompt(%d) missing %q", tc.maxTokens, tc.want)
			}
			if !strings.Contains(got, "ConceptBridge AI") {
				t.Fatalf("system prompt missing identity preamble")
			}
		})
	}
}

func TestBuildUserPrompt_EmbedsVocabularyAndBudget(t *testing.T) {
	in := PromptInput{
		Profession:         "cooking",
		ConceptName:        "Recursion",
		ConceptDescription: "A function calling itself.",
		TopicContext:       "Computer Science",
		DifficultyLevel:    "intermediate",
		CreativityLevel:    3,
		MaxTokens:          1500,
		ResponseFormat:     "detailed",
	}

	got := BuildUserPrompt(in)
	for _, want := range []string{"Recursion", "cooking", "recipe", "1500", "COOKING", "Balance creativity with clarity"} {
		if !strings.Contains(got, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildUserPrompt_Deterministic(t *testing.T) {
	in := PromptInput{
		Profession:      "gaming",
		ConceptName:     "Hash Tables",
		CreativityLevel: 5,
		MaxTokens:       800,
	}
	if BuildUserPrompt(in) != BuildUserPrompt(in) {
		t.Fatalf("expected identical prompts for identical inputs")
	}
}

func TestBuildUserPrompt_CreativityNotes(t *testing.T) {
	base := PromptInput{Profession: "music", ConceptName: "Induction", MaxTokens: 1000}

	low := base
	low.CreativityLevel = 1
	if !strings.Contains(BuildUserPrompt(low), "straightforward") {
		t.Fatalf("creativity 1 should ask for straightforward analogies")
	}

	high := base
	high.CreativityLevel = 5
	if !strings.Contains(BuildUserPrompt(high), "highly creative") {
		t.Fatalf("creativity 5 should ask for highly creative analogies")
	}
}

func TestVocabularyFor_UnknownProfessionFallsBackToGeneric(t *testing.T) {
	vocab := VocabularyFor("beekeeping")
	if len(vocab.Keywords) == 0 || len(vocab.Examples) == 0 {
		t.Fatalf("generic vocabulary must be non-empty")
	}
	if vocab.Keywords[0] != "processes" {
		t.Fatalf("expected generic entry, got %v", vocab.Keywords)
	}

	known := VocabularyFor("  Gaming ")
	if known.Keywords[0] != "levels" {
		t.Fatalf("profession lookup should trim and lowercase, got %v", known.Keywords)
	}
}

func TestBuildQuickPrompt_OptionalContext(t *testing.T) {
	withCtx := BuildQuickPrompt("sports", "Binary Trees", "coaching a youth team")
	if !strings.Contains(withCtx, "Context: coaching a youth team") {
		t.Fatalf("quick prompt dropped the context line")
	}

	withoutCtx := BuildQuickPrompt("sports", "Binary Trees", "")
	if strings.Contains(withoutCtx, "Context:") {
		t.Fatalf("quick prompt should omit empty context")
	}
}
