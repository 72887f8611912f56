package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/conceptbridge-backend/internal/logger"
)

type fakeAIClient struct {
	content  string
	err      error
	lastOpts *AIOptions
	calls    int
}

func (f *fakeAIClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error) {
	f.calls++
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &AICompletion{Content: f.content}, nil
}

func (f *fakeAIClient) Model() string { return "gpt-4" }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func testPromptInput() PromptInput {
	return PromptInput{
		Profession:         "cooking",
		ConceptName:        "Recursion",
		ConceptDescription: "A function calling itself.",
		TopicContext:       "Computer Science",
		DifficultyLevel:    "intermediate",
		CreativityLevel:    3,
		MaxTokens:          1500,
		ResponseFormat:     "detailed",
	}
}

func TestTemperatureFor(t *testing.T) {
	cases := []struct {
		level int
		want  float64
	}{
		{level: 1, want: 0.45},
		{level: 3, want: 0.75},
		{level: 4, want: 0.9},
		{level: 5, want: 1.0}, // 1.05 capped
	}
	for _, tc := range cases {
		got := TemperatureFor(tc.level)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("TemperatureFor(%d)=%v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	got := EstimateTokens("one two three four")
	want := 4 * 1.3
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("EstimateTokens=%v, want %v", got, want)
	}
}

func TestSafeOutputTokens_BoundsForSmallBudget(t *testing.T) {
	// For a 500-token budget the result must sit in [floor, 500*0.75]
	// regardless of prompt size.
	for _, estimatedInput := range []float64{0, 50, 200, 400, 1000} {
		got := SafeOutputTokens(500, estimatedInput)
		if got < 300 {
			t.Fatalf("SafeOutputTokens(500, %v)=%d below floor", estimatedInput, got)
		}
		if float64(got) > 500*0.75 && got != 300 {
			t.Fatalf("SafeOutputTokens(500, %v)=%d above 75%% ceiling", estimatedInput, got)
		}
	}
}

func TestSafeOutputTokens_CeilingAndRemaining(t *testing.T) {
	// Large budget, small prompt: capped at 75% of the budget.
	if got := SafeOutputTokens(4000, 100); got != 3000 {
		t.Fatalf("expected 75%% ceiling 3000, got %d", got)
	}
	// Large prompt eats the budget: remaining wins over the ceiling.
	if got := SafeOutputTokens(4000, 3500); got != 500 {
		t.Fatalf("expected remaining 500, got %d", got)
	}
	// Prompt bigger than budget: floor applies.
	if got := SafeOutputTokens(400, 600); got != 300 {
		t.Fatalf("expected floor 300, got %d", got)
	}
}

func TestGenerateAnalogy_ParsesStructuredJSON(t *testing.T) {
	fake := &fakeAIClient{content: `{
		"title": "Recursion is Like Reducing a Sauce",
		"explanation": "Each pass works on a smaller amount.",
		"examples": [{"title": "Stock", "description": "Simmer down repeatedly."}]
	}`}
	gs := NewGenerationService(testLogger(t), fake)

	result := gs.GenerateAnalogy(context.Background(), testPromptInput())
	if result.Fallback {
		t.Fatalf("expected live result, got fallback: %s", result.FallbackReason)
	}
	if result.Title != "Recursion is Like Reducing a Sauce" {
		t.Fatalf("unexpected title %q", result.Title)
	}
	if len(result.Examples) != 1 || result.Examples[0].Title != "Stock" {
		t.Fatalf("examples not parsed: %+v", result.Examples)
	}
	if fake.lastOpts == nil || fake.lastOpts.MaxTokens < 300 {
		t.Fatalf("expected output budget >= floor, got %+v", fake.lastOpts)
	}
}

func TestGenerateAnalogy_MalformedJSONTruncates(t *testing.T) {
	long := "{" + strings.Repeat("broken json ", 100)
	fake := &fakeAIClient{content: long}
	gs := NewGenerationService(testLogger(t), fake)

	result := gs.GenerateAnalogy(context.Background(), testPromptInput())
	if result.Fallback {
		t.Fatalf("shape errors degrade locally, not via fallback")
	}
	if result.Title != "Understanding Through Analogy" {
		t.Fatalf("unexpected title %q", result.Title)
	}
	if len(result.Explanation) > 503 {
		t.Fatalf("explanation not truncated: %d chars", len(result.Explanation))
	}
	if len(result.Examples) != 0 {
		t.Fatalf("expected no examples for truncated reply")
	}
}

func TestGenerateAnalogy_PlainTextTitleScan(t *testing.T) {
	fake := &fakeAIClient{content: "Recursion is like stacking mixing bowls.\n\nEach bowl holds a smaller batch of the same dough, and you unstack them in reverse order."}
	gs := NewGenerationService(testLogger(t), fake)

	result := gs.GenerateAnalogy(context.Background(), testPromptInput())
	if result.Title != "Recursion is like stacking mixing bowls." {
		t.Fatalf("title scan failed, got %q", result.Title)
	}
	if result.Explanation == "" {
		t.Fatalf("plain-text replies keep the full text as the explanation")
	}
}

func TestGenerateAnalogy_PlainTextWithoutKeywordsKeepsDefaultTitle(t *testing.T) {
	fake := &fakeAIClient{content: "Paragraph one about the concept.\nParagraph two with more detail."}
	gs := NewGenerationService(testLogger(t), fake)

	result := gs.GenerateAnalogy(context.Background(), testPromptInput())
	if result.Title != "Understanding Through Analogy" {
		t.Fatalf("expected default title, got %q", result.Title)
	}
	if result.Explanation == "" {
		t.Fatalf("explanation must never be empty")
	}
}

func TestGenerateAnalogy_ClientFailureUsesFallback(t *testing.T) {
	fake := &fakeAIClient{err: errors.New("connection refused")}
	gs := NewGenerationService(testLogger(t), fake)

	result := gs.GenerateAnalogy(context.Background(), testPromptInput())
	if !result.Fallback {
		t.Fatalf("expected fallback branch")
	}
	if result.FallbackReason == "" {
		t.Fatalf("fallback reason must be recorded")
	}
	if result.Title == "" || result.Explanation == "" {
		t.Fatalf("fallback must produce non-empty title and explanation")
	}
	if len(result.Examples) == 0 {
		t.Fatalf("fallback always returns at least one example")
	}
}

func TestFallbackAnalogy_Deterministic(t *testing.T) {
	a := FallbackAnalogy("gaming", "Recursion", "A function calling itself.")
	b := FallbackAnalogy("gaming", "Recursion", "A function calling itself.")
	if a.Title != b.Title || a.Explanation != b.Explanation {
		t.Fatalf("fallback generator must be deterministic")
	}
	if !strings.Contains(a.Explanation, "levels") {
		t.Fatalf("fallback should use the profession vocabulary, got:\n%s", a.Explanation)
	}
}

func TestGenerateQuickAnalogy_ParsesJSON(t *testing.T) {
	fake := &fakeAIClient{content: `{"title":"Quick Take","explanation":"Short and sweet.","practical_examples":["a"],"key_connections":["b"],"next_steps":["c"]}`}
	gs := NewGenerationService(testLogger(t), fake)

	result := gs.GenerateQuickAnalogy(context.Background(), "music", "Recursion", "", 2, 0, "")
	if result.AnalogyTitle != "Quick Take" || result.Explanation != "Short and sweet." {
		t.Fatalf("quick payload not parsed: %+v", result)
	}
	if result.Fallback {
		t.Fatalf("unexpected fallback")
	}
	if fake.lastOpts.MaxTokens != 800 {
		t.Fatalf("expected default quick budget 800, got %d", fake.lastOpts.MaxTokens)
	}
}

func TestGenerateQuickAnalogy_FailureUsesOfflinePayload(t *testing.T) {
	fake := &fakeAIClient{err: errors.New("timeout")}
	gs := NewGenerationService(testLogger(t), fake)

	result := gs.GenerateQuickAnalogy(context.Background(), "music", "Recursion", "", 2, 500, "concise")
	if !result.Fallback {
		t.Fatalf("expected offline payload")
	}
	if result.AnalogyTitle == "" || result.Explanation == "" || len(result.PracticalExamples) == 0 {
		t.Fatalf("offline payload incomplete: %+v", result)
	}
}
