package db

import (
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

// SeedCatalog inserts the starter professions and topic catalog. It is
// idempotent: tables that already have rows are left alone.
func SeedCatalog(gormDB *gorm.DB, log *logger.Logger) error {
  seedLog := log.With("service", "SeedCatalog")

  var professionCount int64
  if err := gormDB.Model(&types.Profession{}).Count(&professionCount).Error; err != nil {
    return err
  }
  if professionCount > 0 {
    seedLog.Info("Professions already seeded, skipping", "count", professionCount)
  } else {
    professions := []*types.Profession{
      {
        Name:        "Cooking",
        Description: "Perfect for procedural thinking and step-by-step processes. Great for understanding algorithms through recipe analogies, cooking techniques, and kitchen workflows.",
      },
      {
        Name:        "Sports",
        Description: "Ideal for strategy, teamwork, and competitive algorithms. Perfect for game theory, optimization concepts, and performance analytics through athletic analogies.",
      },
      {
        Name:        "Gaming",
        Description: "Natural fit for data structures, progression systems, and interactive learning. Perfect for understanding complex systems through game mechanics and virtual worlds.",
      },
      {
        Name:        "Music",
        Description: "Great for patterns, sequences, and harmonic relationships. Perfect for understanding algorithms through musical compositions, rhythm, and sound processing.",
      },
      {
        Name:        "Business",
        Description: "Excellent for organizational structures and workflows. Ideal for database design, system architecture, and process optimization through corporate analogies.",
      },
    }
    if err := gormDB.Create(&professions).Error; err != nil {
      seedLog.Error("Failed to seed professions", "error", err)
      return err
    }
    seedLog.Info("Seeded professions", "count", len(professions))
  }

  var topicCount int64
  if err := gormDB.Model(&types.Topic{}).Count(&topicCount).Error; err != nil {
    return err
  }
  if topicCount > 0 {
    seedLog.Info("Topics already seeded, skipping", "count", topicCount)
    return nil
  }

  cs := &types.Topic{
    Name:        "Computer Science",
    Description: "Core computer science concepts: data structures, algorithms, and how programs actually work.",
    Icon:        "cpu",
    Color:       "#4F46E5",
  }
  math := &types.Topic{
    Name:        "Mathematics",
    Description: "Foundational math for problem solving: logic, combinatorics, and proof techniques.",
    Icon:        "sigma",
    Color:       "#059669",
  }
  if err := gormDB.Create(&[]*types.Topic{cs, math}).Error; err != nil {
    seedLog.Error("Failed to seed topics", "error", err)
    return err
  }

  subtopics := []*types.Subtopic{
    {TopicID: cs.ID, Name: "Recursion", Description: "Functions that call themselves to solve smaller versions of the same problem.", DifficultyLevel: types.DifficultyIntermediate, EstimatedMinutes: 45},
    {TopicID: cs.ID, Name: "Binary Trees", Description: "Hierarchical structures where every node has at most two children.", DifficultyLevel: types.DifficultyBeginner, EstimatedMinutes: 30},
    {TopicID: cs.ID, Name: "Hash Tables", Description: "Key-to-slot mapping for constant-time lookups.", DifficultyLevel: types.DifficultyIntermediate, EstimatedMinutes: 40},
    {TopicID: cs.ID, Name: "Dynamic Programming", Description: "Building solutions from overlapping subproblems instead of recomputing them.", DifficultyLevel: types.DifficultyAdvanced, EstimatedMinutes: 60},
    {TopicID: cs.ID, Name: "Graph Traversal", Description: "Systematic ways to visit every node of a connected structure.", DifficultyLevel: types.DifficultyIntermediate, EstimatedMinutes: 50},
    {TopicID: math.ID, Name: "Induction", Description: "Proving a statement for all naturals from a base case and a step.", DifficultyLevel: types.DifficultyIntermediate, EstimatedMinutes: 40},
    {TopicID: math.ID, Name: "Combinatorics", Description: "Counting arrangements and selections without enumerating them.", DifficultyLevel: types.DifficultyBeginner, EstimatedMinutes: 35},
  }
  if err := gormDB.Create(&subtopics).Error; err != nil {
    seedLog.Error("Failed to seed subtopics", "error", err)
    return err
  }
  seedLog.Info("Seeded topic catalog", "topics", 2, "subtopics", len(subtopics))
  return nil
}
