package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/conceptbridge-backend/internal/db"
	"github.com/yungbote/conceptbridge-backend/internal/repos"
	"github.com/yungbote/conceptbridge-backend/internal/types"
)

type pipelineFixture struct {
	db       *gorm.DB
	service  AnalogyService
	client   *fakeAIClient
	cooking  *types.Profession
	topic    *types.Topic
	subtopic *types.Subtopic
}

func newPipelineFixture(t *testing.T, client *fakeAIClient) *pipelineFixture {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cooking := &types.Profession{Name: "Cooking", Description: "Step-by-step processes."}
	topic := &types.Topic{Name: "Computer Science", Description: "Core CS concepts."}
	if err := gormDB.Create(cooking).Error; err != nil {
		t.Fatalf("seed profession: %v", err)
	}
	if err := gormDB.Create(topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	subtopic := &types.Subtopic{TopicID: topic.ID, Name: "Recursion", Description: "A function calling itself.", DifficultyLevel: types.DifficultyIntermediate}
	if err := gormDB.Create(subtopic).Error; err != nil {
		t.Fatalf("seed subtopic: %v", err)
	}

	log := testLogger(t)
	service := NewAnalogyService(
		gormDB,
		log,
		repos.NewProfessionRepo(gormDB, log),
		repos.NewTopicRepo(gormDB, log),
		repos.NewSubtopicRepo(gormDB, log),
		repos.NewLearningSessionRepo(gormDB, log),
		repos.NewGeneratedAnalogyRepo(gormDB, log),
		NewGenerationService(log, client),
	)

	return &pipelineFixture{
		db:       gormDB,
		service:  service,
		client:   client,
		cooking:  cooking,
		topic:    topic,
		subtopic: subtopic,
	}
}

func (f *pipelineFixture) generateInput() GenerateAnalogyInput {
	return GenerateAnalogyInput{
		UserIdentifier: "user-1",
		ProfessionID:   f.cooking.ID,
		TopicID:        f.topic.ID,
	}
}

func TestGenerate_PersistsAnalogyAndSession(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: `{"title":"T","explanation":"E","examples":[]}`})

	view, err := f.service.Generate(context.Background(), f.generateInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if view.AnalogyTitle != "T" || view.AnalogyExplanation != "E" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.ProfessionContext != "Cooking" || view.TopicContext != "Computer Science" {
		t.Fatalf("contexts not resolved: %+v", view)
	}

	var count int64
	if err := f.db.Model(&types.GeneratedAnalogy{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored analogy, got %d", count)
	}

	var stored types.GeneratedAnalogy
	if err := f.db.First(&stored, "id = ?", view.AnalogyID).Error; err != nil {
		t.Fatalf("load stored analogy: %v", err)
	}
	if stored.PromptTemplateVersion != PromptTemplateVersion {
		t.Fatalf("prompt version not stamped: %q", stored.PromptTemplateVersion)
	}
	if stored.AIModelUsed != "gpt-4" {
		t.Fatalf("model not recorded: %q", stored.AIModelUsed)
	}
}

func TestGenerate_ConceptDefaultsToSubtopic(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: `{"title":"T","explanation":"E"}`})

	in := f.generateInput()
	in.SubtopicID = &f.subtopic.ID
	view, err := f.service.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if view.ConceptName != "Recursion" {
		t.Fatalf("concept should default to the subtopic name, got %q", view.ConceptName)
	}
}

func TestGenerate_FallbackStillPersistsAndSucceeds(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{err: errors.New("dns failure")})

	view, err := f.service.Generate(context.Background(), f.generateInput())
	if err != nil {
		t.Fatalf("generation failure must not surface as an error: %v", err)
	}
	if !view.FallbackUsed {
		t.Fatalf("expected fallback content")
	}
	if view.AnalogyTitle == "" || view.AnalogyExplanation == "" {
		t.Fatalf("fallback view must carry non-empty title and explanation")
	}

	var count int64
	if err := f.db.Model(&types.GeneratedAnalogy{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("fallback result must be persisted, got %d rows", count)
	}
}

func TestGenerate_UnknownIDsReturnNotFound(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: "{}"})

	unknown := uuid.New()

	in := f.generateInput()
	in.ProfessionID = unknown
	if _, err := f.service.Generate(context.Background(), in); !IsNotFound(err) {
		t.Fatalf("unknown profession: want NotFoundError, got %v", err)
	}

	in = f.generateInput()
	in.TopicID = unknown
	if _, err := f.service.Generate(context.Background(), in); !IsNotFound(err) {
		t.Fatalf("unknown topic: want NotFoundError, got %v", err)
	}

	in = f.generateInput()
	in.SubtopicID = &unknown
	if _, err := f.service.Generate(context.Background(), in); !IsNotFound(err) {
		t.Fatalf("unknown subtopic: want NotFoundError, got %v", err)
	}

	// Nothing was generated along any of the failed paths.
	var count int64
	if err := f.db.Model(&types.GeneratedAnalogy{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed validation must not persist analogies, got %d", count)
	}
}

func TestGenerate_ReusesActiveSession(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: `{"title":"T","explanation":"E"}`})

	first, err := f.service.Generate(context.Background(), f.generateInput())
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := f.service.Generate(context.Background(), f.generateInput())
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if first.SessionID != second.SessionID {
		t.Fatalf("active session must be reused: %s vs %s", first.SessionID, second.SessionID)
	}

	var sessions int64
	if err := f.db.Model(&types.LearningSession{}).Count(&sessions).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if sessions != 1 {
		t.Fatalf("expected a single session, got %d", sessions)
	}
}

func TestGenerate_DifferentUsersGetDifferentSessions(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: `{"title":"T","explanation":"E"}`})

	first, err := f.service.Generate(context.Background(), f.generateInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	in := f.generateInput()
	in.UserIdentifier = "user-2"
	second, err := f.service.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first.SessionID == second.SessionID {
		t.Fatalf("sessions must be scoped per user")
	}
}

func TestUnderstandingScore(t *testing.T) {
	cases := []struct {
		rating   int
		improved bool
		want     float64
	}{
		{rating: 5, improved: true, want: 1.0},
		{rating: 1, improved: false, want: 0.2},
		{rating: 3, improved: true, want: 0.8},
		{rating: 5, improved: false, want: 1.0},
		{rating: 4, improved: true, want: 1.0},
	}
	for _, tc := range cases {
		got := UnderstandingScore(tc.rating, tc.improved)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("UnderstandingScore(%d, %v)=%v, want %v", tc.rating, tc.improved, got, tc.want)
		}
	}
}

func TestSubmitFeedback_PersistsScore(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: `{"title":"T","explanation":"E"}`})

	view, err := f.service.Generate(context.Background(), f.generateInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	outcome, err := f.service.SubmitFeedback(context.Background(), view.AnalogyID, 3, true)
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if diff := outcome.UnderstandingScore - 0.8; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("score=%v, want 0.8", outcome.UnderstandingScore)
	}

	var stored types.GeneratedAnalogy
	if err := f.db.First(&stored, "id = ?", view.AnalogyID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.UserRating == nil || *stored.UserRating != 3 {
		t.Fatalf("rating not persisted: %+v", stored.UserRating)
	}
	if stored.UnderstandingScore == nil {
		t.Fatalf("understanding score not persisted")
	}
}

func TestSubmitFeedback_UnknownAnalogy(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: "{}"})

	if _, err := f.service.SubmitFeedback(context.Background(), uuid.New(), 4, false); !IsNotFound(err) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestQuickExplain_WritesNothing(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: `{"title":"Q","explanation":"E"}`})

	result := f.service.QuickExplain(context.Background(), "gaming", "Recursion", "", 0, 0, "")
	if result.AnalogyTitle == "" {
		t.Fatalf("quick explanation missing title")
	}

	var analogies, sessions int64
	if err := f.db.Model(&types.GeneratedAnalogy{}).Count(&analogies).Error; err != nil {
		t.Fatalf("count analogies: %v", err)
	}
	if err := f.db.Model(&types.LearningSession{}).Count(&sessions).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if analogies != 0 || sessions != 0 {
		t.Fatalf("quick-explain must not write rows (analogies=%d sessions=%d)", analogies, sessions)
	}
}

func TestPopularCombinations(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: `{"title":"T","explanation":"E"}`})

	view, err := f.service.Generate(context.Background(), f.generateInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := f.service.SubmitFeedback(context.Background(), view.AnalogyID, 4, false); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}

	combos, err := f.service.PopularCombinations(context.Background())
	if err != nil {
		t.Fatalf("PopularCombinations: %v", err)
	}
	if len(combos) != 1 {
		t.Fatalf("expected 1 combination, got %d", len(combos))
	}
	combo := combos[0]
	if combo.Profession != "Cooking" || combo.Topic != "Computer Science" {
		t.Fatalf("unexpected combination: %+v", combo)
	}
	if combo.AnalogyCount != 1 {
		t.Fatalf("analogy count=%d, want 1", combo.AnalogyCount)
	}
	if diff := combo.AvgRating - 4.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("avg rating=%v, want 4.0", combo.AvgRating)
	}
}

func TestSessionHistoryReads(t *testing.T) {
	f := newPipelineFixture(t, &fakeAIClient{content: `{"title":"T","explanation":"E"}`})

	view, err := f.service.Generate(context.Background(), f.generateInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	sessions, err := f.service.UserSessions(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("UserSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].AnalogiesCount != 1 {
		t.Fatalf("analogy count=%d, want 1", sessions[0].AnalogiesCount)
	}
	if sessions[0].ProfessionName != "Cooking" || sessions[0].TopicName != "Computer Science" {
		t.Fatalf("session names not resolved: %+v", sessions[0])
	}

	analogies, err := f.service.SessionAnalogies(context.Background(), view.SessionID)
	if err != nil {
		t.Fatalf("SessionAnalogies: %v", err)
	}
	if len(analogies) != 1 || analogies[0].AnalogyID != view.AnalogyID {
		t.Fatalf("unexpected session analogies: %+v", analogies)
	}

	if _, err := f.service.SessionAnalogies(context.Background(), uuid.New()); !IsNotFound(err) {
		t.Fatalf("unknown session: want NotFoundError, got %v", err)
	}
}
