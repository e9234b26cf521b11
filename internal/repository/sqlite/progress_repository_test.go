package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/repository"
	"github.com/nara/thaiquest/internal/repository/sqlite"
	"github.com/nara/thaiquest/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)

	for _, row := range [][]string{
		{"v1", "สวัสดี", "sawatdi", "hello"},
		{"v2", "ขอบคุณ", "khop khun", "thank you"},
		{"v3", "น้ำ", "nam", "water"},
	} {
		_, err := s.db.Exec(`
			INSERT INTO vocabulary (id, thai_script, romanization, english_translation) VALUES (?, ?, ?, ?)
		`, row[0], row[1], row[2], row[3])
		s.Require().NoError(err)
	}
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) record(vocabID string, box int, nextReview time.Time) models.ReviewProgress {
	return models.ReviewProgress{
		UserID:       "u1",
		VocabularyID: vocabID,
		Box:          box,
		LastReviewed: nextReview.Add(-24 * time.Hour),
		NextReview:   nextReview,
	}
}

func (s *ProgressRepositorySuite) TestGetMissingReturnsNil() {
	rec, err := s.repo.Get(context.Background(), "u1", "v1")
	s.Require().NoError(err)
	s.Nil(rec)
}

func (s *ProgressRepositorySuite) TestUpsertInsertsThenUpdates() {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	rec := s.record("v1", 1, now)
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	loaded, err := s.repo.Get(ctx, "u1", "v1")
	s.Require().NoError(err)
	s.Require().NotNil(loaded)
	s.Equal(1, loaded.Box)

	rec.Box = 3
	rec.TimesCorrect = 2
	rec.ProblemWord = true
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	loaded, err = s.repo.Get(ctx, "u1", "v1")
	s.Require().NoError(err)
	s.Require().NotNil(loaded)
	s.Equal(3, loaded.Box, "conflict on the composite key updates in place")
	s.Equal(2, loaded.TimesCorrect)
	s.True(loaded.ProblemWord)
}

func (s *ProgressRepositorySuite) TestDueFiltersAndOrders() {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.Upsert(ctx, s.record("v1", 3, now.Add(-time.Hour))))
	s.Require().NoError(s.repo.Upsert(ctx, s.record("v2", 1, now.Add(-2*time.Hour))))
	s.Require().NoError(s.repo.Upsert(ctx, s.record("v3", 2, now.Add(48*time.Hour))))

	due, err := s.repo.Due(ctx, models.ReviewFilter{UserID: "u1", DueBefore: &now})
	s.Require().NoError(err)
	s.Require().Len(due, 2, "future reviews are excluded")
	s.Equal("v2", due[0].VocabularyID, "lower boxes come first")
	s.Equal("v1", due[1].VocabularyID)
	s.Equal("ขอบคุณ", due[0].Vocab.ThaiScript, "vocabulary joins onto the record")
}

func (s *ProgressRepositorySuite) TestDueLeechOnly() {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	problem := s.record("v1", 1, now.Add(-time.Hour))
	problem.ProblemWord = true
	s.Require().NoError(s.repo.Upsert(ctx, problem))

	streaky := s.record("v2", 2, now.Add(-time.Hour))
	streaky.IncorrectStreak = 2
	s.Require().NoError(s.repo.Upsert(ctx, streaky))

	healthy := s.record("v3", 3, now.Add(-time.Hour))
	s.Require().NoError(s.repo.Upsert(ctx, healthy))

	due, err := s.repo.Due(ctx, models.ReviewFilter{UserID: "u1", DueBefore: &now, LeechOnly: true})
	s.Require().NoError(err)
	s.Require().Len(due, 2, "leech mode keeps problem words and high streaks only")
	s.Equal("v1", due[0].VocabularyID)
	s.Equal("v2", due[1].VocabularyID)
}

func (s *ProgressRepositorySuite) TestDueRespectsLimit() {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.Upsert(ctx, s.record("v1", 1, now.Add(-time.Hour))))
	s.Require().NoError(s.repo.Upsert(ctx, s.record("v2", 2, now.Add(-time.Hour))))

	due, err := s.repo.Due(ctx, models.ReviewFilter{UserID: "u1", DueBefore: &now, Limit: 1})
	s.Require().NoError(err)
	s.Len(due, 1)
}

func (s *ProgressRepositorySuite) TestDueScopedToUser() {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	other := s.record("v1", 1, now.Add(-time.Hour))
	other.UserID = "u2"
	s.Require().NoError(s.repo.Upsert(ctx, other))

	due, err := s.repo.Due(ctx, models.ReviewFilter{UserID: "u1", DueBefore: &now})
	s.Require().NoError(err)
	s.Empty(due)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
