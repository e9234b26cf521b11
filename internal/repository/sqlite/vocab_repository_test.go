package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/nara/thaiquest/internal/repository"
	"github.com/nara/thaiquest/internal/repository/sqlite"
	"github.com/nara/thaiquest/internal/testutil"
)

type VocabRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.VocabularyRepository
}

func (s *VocabRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewVocabularyRepository(s.db)
}

func (s *VocabRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *VocabRepositorySuite) seedVocab(id, thai, roman, english string, difficulty int) {
	_, err := s.db.Exec(`
		INSERT INTO vocabulary (id, thai_script, romanization, english_translation, part_of_speech, difficulty_level)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, thai, roman, english, "noun", difficulty)
	s.Require().NoError(err)
}

func (s *VocabRepositorySuite) seedLevelVocab(levelID int, vocabularyID string, order int) {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO levels (id, environment_name) VALUES (?, ?)`, levelID, "airport")
	s.Require().NoError(err)
	_, err = s.db.Exec(`
		INSERT INTO level_vocabulary (level_id, vocabulary_id, display_order) VALUES (?, ?, ?)
	`, levelID, vocabularyID, order)
	s.Require().NoError(err)
}

func (s *VocabRepositorySuite) TestGet() {
	ctx := context.Background()
	s.seedVocab("v1", "สวัสดี", "sawatdi", "hello", 1)

	item, err := s.repo.Get(ctx, "v1")
	s.Require().NoError(err)
	s.Require().NotNil(item)
	s.Equal("สวัสดี", item.ThaiScript)
	s.Equal("sawatdi", item.Romanization)
	s.Equal("hello", item.EnglishTranslation)
	s.Equal("noun", item.PartOfSpeech)
	s.Equal(1, item.DifficultyLevel)
}

func (s *VocabRepositorySuite) TestGetMissingReturnsNil() {
	item, err := s.repo.Get(context.Background(), "nope")
	s.Require().NoError(err)
	s.Nil(item)
}

func (s *VocabRepositorySuite) TestLevelVocabUsesCuratedOrder() {
	ctx := context.Background()
	s.seedVocab("v1", "หนึ่ง", "nueng", "one", 1)
	s.seedVocab("v2", "สอง", "song", "two", 1)
	s.seedVocab("v3", "สาม", "sam", "three", 1)
	s.seedLevelVocab(1, "v3", 0)
	s.seedLevelVocab(1, "v1", 1)
	s.seedLevelVocab(1, "v2", 2)

	items, err := s.repo.LevelVocab(ctx, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal("v3", items[0].ID, "curated display order wins over insertion order")
	s.Equal("v1", items[1].ID)
	s.Equal("v2", items[2].ID)
}

func (s *VocabRepositorySuite) TestLevelVocabFallsBackToDifficulty() {
	ctx := context.Background()
	s.seedVocab("v1", "หนึ่ง", "nueng", "one", 2)
	s.seedVocab("v2", "สอง", "song", "two", 2)
	s.seedVocab("v3", "สาม", "sam", "three", 5)

	items, err := s.repo.LevelVocab(ctx, 2, 10)
	s.Require().NoError(err)
	s.Require().Len(items, 2, "no curation rows, difficulty match applies")
	s.Equal("v1", items[0].ID)
	s.Equal("v2", items[1].ID)
}

func (s *VocabRepositorySuite) TestLevelVocabRespectsLimit() {
	ctx := context.Background()
	s.seedVocab("v1", "หนึ่ง", "nueng", "one", 1)
	s.seedVocab("v2", "สอง", "song", "two", 1)
	s.seedLevelVocab(1, "v1", 0)
	s.seedLevelVocab(1, "v2", 1)

	items, err := s.repo.LevelVocab(ctx, 1, 1)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *VocabRepositorySuite) TestLevelVocabEmpty() {
	items, err := s.repo.LevelVocab(context.Background(), 9, 10)
	s.Require().NoError(err)
	s.Empty(items)
}

func TestVocabRepositorySuite(t *testing.T) {
	suite.Run(t, new(VocabRepositorySuite))
}
