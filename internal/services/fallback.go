package services

import (
  "fmt"
  "strings"
)

// titleCase is enough for profession names; strings.Title is deprecated and
// pulling x/text/cases in for single words is overkill.
func titleCase(s string) string {
  if s == "" {
    return s
  }
  return strings.ToUpper(s[:1]) + s[1:]
}

// FallbackAnalogy is the deterministic offline substitute for the external
// call. It only touches the static vocabulary table, always succeeds, and
// always returns at least one example.
func FallbackAnalogy(profession, conceptName, conceptDescription string) *AnalogyResult {
  vocab := VocabularyFor(profession)

  keywords := vocab.Keywords
  if len(keywords) > 3 {
    keywords = keywords[:3]
  }

  title := fmt.Sprintf("Understanding %s Through %s", conceptName, titleCase(profession))

  explanation := strings.TrimSpace(fmt.Sprintf(`
Let me explain %s using concepts from %s that you're familiar with.

%s

In %s, you probably work with %s.
%s works in a similar way - it's about organizing and managing information systematically.

Think of it like %s where you need to:
1. Understand the components involved
2. Follow a systematic approach
3. Achieve a specific outcome efficiently

This concept is fundamental because it helps solve complex problems by breaking them down into manageable parts, much like how you approach challenges in %s.
`, conceptName, profession, conceptDescription, profession, strings.Join(keywords, ", "), conceptName, vocab.Examples[0], profession))

  return &AnalogyResult{
    Title:       title,
    Explanation: explanation,
    Examples: []AnalogyExample{
      {
        Title:          fmt.Sprintf("Basic %s Example", conceptName),
        Description:    fmt.Sprintf("A simple example relating %s to %s practices", conceptName, profession),
        VisualMetaphor: fmt.Sprintf("Like organizing %s", vocab.Keywords[0]),
      },
    },
    Fallback: true,
  }
}

// FallbackQuickAnalogy is the offline quick-explain payload.
func FallbackQuickAnalogy(profession, concept string) *QuickAnalogyResult {
  return &QuickAnalogyResult{
    Concept:           concept,
    ProfessionContext: profession,
    AnalogyTitle:      fmt.Sprintf("Understanding %s Through %s", concept, titleCase(profession)),
    Explanation:       fmt.Sprintf("Let me explain %s using examples from %s...", concept, profession),
    PracticalExamples: []string{fmt.Sprintf("Example from %s", profession)},
    KeyConnections:    []string{fmt.Sprintf("Connection to %s", profession)},
    NextSteps:         []string{"Practice with examples", "Apply to real scenarios"},
    Fallback:          true,
  }
}
