package services

import (
  "fmt"
  "strings"
)

// PromptTemplateVersion is stamped onto every persisted analogy so stored
// rows can be traced back to the prompt wording that produced them.
const PromptTemplateVersion = "v1.0"

// PromptInput carries everything the prompt builder needs. Building is pure:
// identical inputs produce identical instruction strings.
type PromptInput struct {
  Profession         string
  ConceptName        string
  ConceptDescription string
  TopicContext       string
  DifficultyLevel    string
  CreativityLevel    int
  MaxTokens          int
  ResponseFormat     string
}

// Token-budget bands controlling how much the model is asked to produce.
const (
  tokenBandMinimalMax  = 800
  tokenBandBalancedMax = 2500
)

// BuildSystemPrompt produces the system instruction. Verbosity and example
// count scale with the token budget: <800 minimal, 800-2500 balanced,
// >2500 comprehensive.
func BuildSystemPrompt(maxTokens int) string {
  var guidance string
  switch {
  case maxTokens < tokenBandMinimalMax:
    guidance = "Keep the explanation tight: 1-2 short paragraphs and a single example. Every sentence must earn its place."
  case maxTokens <= tokenBandBalancedMax:
    guidance = "Balance depth with brevity: 2-3 paragraphs and 2 concrete examples."
  default:
    guidance = "Be comprehensive: 3-4 detailed paragraphs, 2-3 worked examples, and explicit key connections."
  }

  return fmt.Sprintf(`You are ConceptBridge AI, an expert at creating personalized learning analogies. Your job is to explain complex concepts using analogies from the user's professional background.

Guidelines:
1. Create analogies that are accurate, memorable, and directly relatable
2. Use specific terminology and scenarios from the user's profession
3. Provide concrete examples that illuminate the concept
4. Make abstract ideas tangible through familiar experiences
5. Ensure the analogy actually helps understanding, not just entertains

%s

Response Format (JSON):
{
  "title": "Catchy analogy title",
  "explanation": "Explanation using the analogy",
  "examples": [
    {
      "title": "Example 1 Title",
      "description": "Detailed example description",
      "code_snippet": "Optional code/pseudo-code",
      "visual_metaphor": "Visual description"
    }
  ],
  "key_connections": ["Connection 1", "Connection 2"],
  "practical_applications": ["Application 1", "Application 2"]
}`, guidance)
}

// BuildUserPrompt produces the user instruction embedding the concept, the
// profession vocabulary, and the token budget the reply must respect.
func BuildUserPrompt(in PromptInput) string {
  vocab := VocabularyFor(in.Profession)

  var creativityNote string
  switch {
  case in.CreativityLevel >= 4:
    creativityNote = "(Be highly creative and use unexpected connections)"
  case in.CreativityLevel <= 2:
    creativityNote = "(Use straightforward, clear analogies)"
  default:
    creativityNote = "(Balance creativity with clarity)"
  }

  return strings.TrimSpace(fmt.Sprintf(`
Create a personalized analogy to explain "%s" to someone with a %s background.

CONCEPT TO EXPLAIN:
- Name: %s
- Description: %s
- Topic Context: %s
- Target Difficulty: %s

USER'S BACKGROUND (%s):
- Relevant Keywords: %s
- Common Metaphors: %s
- Familiar Examples: %s

CREATIVITY LEVEL: %d/5
%s

RESPONSE LENGTH: %s. Stay within approximately %d tokens.

Requirements:
1. Use terminology and scenarios specifically from %s
2. Create concrete examples that show the concept in action
3. Make the abstract concept tangible and memorable
4. Ensure technical accuracy while maintaining the analogy
5. Include practical applications they can relate to

Provide your response in the JSON format specified in the system prompt.
`,
    in.ConceptName, in.Profession,
    in.ConceptName, in.ConceptDescription, in.TopicContext, in.DifficultyLevel,
    strings.ToUpper(in.Profession),
    strings.Join(vocab.Keywords, ", "),
    strings.Join(vocab.Metaphors, ", "),
    strings.Join(vocab.Examples, ", "),
    in.CreativityLevel, creativityNote,
    in.ResponseFormat, in.MaxTokens,
    in.Profession,
  ))
}

// BuildQuickPrompt is the compact variant used by quick-explain: no catalog
// context, just profession + concept (+ optional free-text context).
func BuildQuickPrompt(profession, concept, context string) string {
  contextLine := ""
  if context != "" {
    contextLine = fmt.Sprintf("Context: %s\n", context)
  }
  return strings.TrimSpace(fmt.Sprintf(`
Explain "%s" to someone with a %s background.
%s
Make it concise but memorable. Use %s terminology and examples.
Provide a clear analogy, 2-3 practical examples, and key connections.

Format as JSON with: title, explanation, practical_examples, key_connections, next_steps
`, concept, profession, contextLine, profession))
}

const quickSystemPrompt = "You are an expert at creating clear, concise analogies. Always respond in JSON format."
