package services

import (
  "context"
  "encoding/json"
  "strings"
  "time"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
)

// AnalogyExample mirrors one entry of the "examples" array the model is
// asked to return.
type AnalogyExample struct {
  Title          string `json:"title"`
  Description    string `json:"description"`
  CodeSnippet    string `json:"code_snippet,omitempty"`
  VisualMetaphor string `json:"visual_metaphor,omitempty"`
}

// AnalogyResult is the normalized outcome of a generation attempt. Callers
// never see raw provider payloads. Fallback marks results produced offline
// by the template generator; FallbackReason records why.
type AnalogyResult struct {
  Title          string
  Explanation    string
  Examples       []AnalogyExample
  ElapsedSeconds float64
  Fallback       bool
  FallbackReason string
}

// QuickAnalogyResult is the stateless quick-explain payload.
type QuickAnalogyResult struct {
  Concept               string   `json:"concept"`
  ProfessionContext     string   `json:"profession_context"`
  AnalogyTitle          string   `json:"analogy_title"`
  Explanation           string   `json:"explanation"`
  PracticalExamples     []string `json:"practical_examples"`
  KeyConnections        []string `json:"key_connections"`
  NextSteps             []string `json:"next_steps"`
  GenerationTimeSeconds float64  `json:"generation_time_seconds"`
  Fallback              bool     `json:"fallback,omitempty"`
}

// GenerationService wraps the external completion call. It never returns an
// error: any client failure is a visible branch into the offline fallback
// generator, so generation "always succeeds" from the caller's side.
type GenerationService interface {
  GenerateAnalogy(ctx context.Context, in PromptInput) *AnalogyResult
  GenerateQuickAnalogy(ctx context.Context, profession, concept, contextText string, creativityLevel, maxTokens int, responseLength string) *QuickAnalogyResult
  Model() string
}

type generationService struct {
  log      *logger.Logger
  aiClient AIClient
}

func NewGenerationService(log *logger.Logger, ai AIClient) GenerationService {
  return &generationService{
    log:      log.With("service", "GenerationService"),
    aiClient: ai,
  }
}

func (gs *generationService) Model() string {
  return gs.aiClient.Model()
}

// Minimum output budget regardless of how large the prompt is.
const minOutputTokens = 300

// EstimateTokens approximates the token count of a prompt as words x 1.3.
func EstimateTokens(text string) float64 {
  return float64(len(strings.Fields(text))) * 1.3
}

// SafeOutputTokens computes the completion budget: whatever is left of the
// overall budget after the estimated input, bounded above by 75% of the
// budget and below by the floor.
func SafeOutputTokens(maxTokens int, estimatedInput float64) int {
  remaining := float64(maxTokens) - estimatedInput
  ceiling := float64(maxTokens) * 0.75
  budget := remaining
  if ceiling < budget {
    budget = ceiling
  }
  if budget < minOutputTokens {
    budget = minOutputTokens
  }
  return int(budget)
}

// TemperatureFor maps the 1-5 creativity dial linearly onto sampling
// temperature, capped at 1.0.
func TemperatureFor(creativityLevel int) float64 {
  t := 0.3 + 0.15*float64(creativityLevel)
  if t > 1.0 {
    t = 1.0
  }
  return t
}

func quickTemperatureFor(creativityLevel int) float64 {
  t := 0.3 + 0.1*float64(creativityLevel)
  if t > 1.0 {
    t = 1.0
  }
  return t
}

func (gs *generationService) GenerateAnalogy(ctx context.Context, in PromptInput) *AnalogyResult {
  start := time.Now()

  system := BuildSystemPrompt(in.MaxTokens)
  user := BuildUserPrompt(in)

  estimatedInput := EstimateTokens(system + " " + user)
  outputBudget := SafeOutputTokens(in.MaxTokens, estimatedInput)

  completion, err := gs.aiClient.Chat(ctx, []AIMessage{
    {Role: "system", Content: system},
    {Role: "user", Content: user},
  }, &AIOptions{
    Temperature: TemperatureFor(in.CreativityLevel),
    MaxTokens:   outputBudget,
  })
  if err != nil {
    // Offline branch: the template generator substitutes for the model.
    gs.log.Warn("Generation call failed, using fallback", "concept", in.ConceptName, "profession", in.Profession, "error", err)
    result := FallbackAnalogy(in.Profession, in.ConceptName, in.ConceptDescription)
    result.ElapsedSeconds = time.Since(start).Seconds()
    result.FallbackReason = err.Error()
    return result
  }

  title, explanation, examples := parseAnalogyCompletion(completion.Content, gs.log)
  elapsed := time.Since(start).Seconds()
  gs.log.Info("Generated analogy", "profession", in.Profession, "concept", in.ConceptName, "elapsed_seconds", elapsed)

  return &AnalogyResult{
    Title:          title,
    Explanation:    explanation,
    Examples:       examples,
    ElapsedSeconds: elapsed,
  }
}

type analogyCompletionPayload struct {
  Title       string           `json:"title"`
  Explanation string           `json:"explanation"`
  Examples    []AnalogyExample `json:"examples"`
}

const (
  defaultAnalogyTitle = "Understanding Through Analogy"
  rawTruncationLimit  = 500
)

// parseAnalogyCompletion normalizes the reply body through three tiers:
// strict JSON, then (for `{`-prefixed but malformed bodies) a 500-char raw
// truncation, then (for plain text) a heuristic title scan.
func parseAnalogyCompletion(content string, log *logger.Logger) (string, string, []AnalogyExample) {
  trimmed := strings.TrimSpace(content)

  if strings.HasPrefix(trimmed, "{") {
    var payload analogyCompletionPayload
    if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
      log.Warn("Completion claimed JSON but failed to parse, truncating raw text", "error", err)
      explanation := trimmed
      if len(explanation) > rawTruncationLimit {
        explanation = explanation[:rawTruncationLimit] + "..."
      }
      return defaultAnalogyTitle, explanation, nil
    }
    title := payload.Title
    if title == "" {
      title = "Concept Explanation"
    }
    return title, payload.Explanation, payload.Examples
  }

  return scanTextCompletion(trimmed)
}

// scanTextCompletion guesses a title from the first three lines of a
// non-JSON reply and keeps the full text as the explanation.
func scanTextCompletion(content string) (string, string, []AnalogyExample) {
  title := defaultAnalogyTitle
  lines := strings.Split(content, "\n")
  limit := 3
  if len(lines) < limit {
    limit = len(lines)
  }
  for _, line := range lines[:limit] {
    candidate := strings.TrimSpace(line)
    if candidate == "" || len(candidate) >= 100 {
      continue
    }
    lower := strings.ToLower(candidate)
    if strings.Contains(lower, "like") || strings.Contains(lower, "analogy") ||
      strings.Contains(lower, "imagine") || strings.Contains(lower, "think of") {
      title = strings.TrimSpace(strings.Trim(candidate, `"`))
      break
    }
  }
  return title, content, nil
}

func (gs *generationService) GenerateQuickAnalogy(ctx context.Context, profession, concept, contextText string, creativityLevel, maxTokens int, responseLength string) *QuickAnalogyResult {
  start := time.Now()

  if maxTokens <= 0 {
    maxTokens = 800
  }
  _ = responseLength // length hint is carried through the prompt only via maxTokens for now

  completion, err := gs.aiClient.Chat(ctx, []AIMessage{
    {Role: "system", Content: quickSystemPrompt},
    {Role: "user", Content: BuildQuickPrompt(profession, concept, contextText)},
  }, &AIOptions{
    Temperature: quickTemperatureFor(creativityLevel),
    MaxTokens:   maxTokens,
  })
  if err != nil {
    gs.log.Warn("Quick explanation call failed, using fallback", "concept", concept, "profession", profession, "error", err)
    result := FallbackQuickAnalogy(profession, concept)
    result.GenerationTimeSeconds = time.Since(start).Seconds()
    return result
  }

  result := &QuickAnalogyResult{
    Concept:           concept,
    ProfessionContext: profession,
  }
  trimmed := strings.TrimSpace(completion.Content)
  if strings.HasPrefix(trimmed, "{") {
    var payload struct {
      Title             string   `json:"title"`
      Explanation       string   `json:"explanation"`
      PracticalExamples []string `json:"practical_examples"`
      KeyConnections    []string `json:"key_connections"`
      NextSteps         []string `json:"next_steps"`
    }
    if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
      result.AnalogyTitle = payload.Title
      result.Explanation = payload.Explanation
      result.PracticalExamples = payload.PracticalExamples
      result.KeyConnections = payload.KeyConnections
      result.NextSteps = payload.NextSteps
    }
  }
  if result.AnalogyTitle == "" {
    result.AnalogyTitle = "Quick Explanation"
  }
  if result.Explanation == "" {
    result.Explanation = trimmed
  }
  result.GenerationTimeSeconds = time.Since(start).Seconds()
  return result
}
