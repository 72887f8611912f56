package services

import "strings"

// ProfessionVocabulary is the static per-profession terminology used by both
// the prompt builder and the offline fallback generator.
type ProfessionVocabulary struct {
  Keywords  []string
  Metaphors []string
  Examples  []string
}

var professionVocabularies = map[string]ProfessionVocabulary{
  "cooking": {
    Keywords:  []string{"recipe", "ingredients", "cooking process", "kitchen tools", "preparation", "seasoning", "timing"},
    Metaphors: []string{"mixing ingredients", "following recipes", "kitchen workflow", "taste testing", "meal planning"},
    Examples:  []string{"preparing a multi-course meal", "organizing a kitchen", "scaling recipes", "ingredient substitution"},
  },
  "gaming": {
    Keywords:  []string{"levels", "progression", "stats", "inventory", "quests", "NPCs", "skill trees", "gameplay"},
    Metaphors: []string{"character builds", "quest completion", "resource management", "level progression", "guild systems"},
    Examples:  []string{"RPG character development", "strategy game tactics", "puzzle-solving mechanics", "multiplayer coordination"},
  },
  "sports": {
    Keywords:  []string{"team strategy", "training", "performance", "competition", "tactics", "coaching", "practice"},
    Metaphors: []string{"team formations", "training regimens", "game strategy", "performance metrics", "tournament brackets"},
    Examples:  []string{"building a winning team", "developing game strategy", "analyzing player statistics", "tournament preparation"},
  },
  "music": {
    Keywords:  []string{"harmony", "rhythm", "composition", "instruments", "scales", "tempo", "arrangement"},
    Metaphors: []string{"musical composition", "orchestra coordination", "rhythm patterns", "harmonic progressions", "song structure"},
    Examples:  []string{"composing a symphony", "arranging instruments", "creating rhythm patterns", "musical improvisation"},
  },
  "business": {
    Keywords:  []string{"organization", "processes", "management", "efficiency", "workflow", "teams", "projects"},
    Metaphors: []string{"company structure", "project management", "resource allocation", "team coordination", "business strategy"},
    Examples:  []string{"organizational hierarchy", "project planning", "resource optimization", "team management"},
  },
}

var genericVocabulary = ProfessionVocabulary{
  Keywords:  []string{"processes", "systems", "organization"},
  Metaphors: []string{"structured approaches", "systematic thinking"},
  Examples:  []string{"workflow optimization", "systematic problem solving"},
}

// VocabularyFor returns the vocabulary table entry for a profession,
// falling back to a generic entry for unrecognized professions.
func VocabularyFor(profession string) ProfessionVocabulary {
  if vocab, ok := professionVocabularies[strings.ToLower(strings.TrimSpace(profession))]; ok {
    return vocab
  }
  return genericVocabulary
}

// SupportedProfessions lists the professions with a dedicated vocabulary
// entry (surfaced by the analogy health endpoint).
func SupportedProfessions() []string {
  out := make([]string, 0, len(professionVocabularies))
  for name := range professionVocabularies {
    out = append(out, name)
  }
  return out
}
