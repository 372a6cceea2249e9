package bank

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
)

// Item is the stored form of a bank question.
type Item struct {
	ID            string `gorm:"primaryKey"`
	ModuleID      string `gorm:"index"`
	Text          string
	Options       datatypes.JSON
	CorrectAnswer string
	Explanation   string
	Difficulty    int
	Verified      bool `gorm:"index"`
	Tags          []ItemTag
}

// ItemTag joins an item to one normalized concept key. The raw label is
// kept so delivered questions carry human-readable tags.
type ItemTag struct {
	ID         uint   `gorm:"primaryKey"`
	ItemID     string `gorm:"index"`
	ConceptKey string `gorm:"index"`
	Label      string
}

// GormStore implements ItemStore over the shared sqlite database. One
// instance serves one tier: verified selects only curated items, the plain
// bank everything else.
type GormStore struct {
	db       *gorm.DB
	verified bool
}

// NewVerifiedStore returns the curated-items tier.
func NewVerifiedStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, verified: true}
}

// NewBankStore returns the precomputed-bank tier.
func NewBankStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, verified: false}
}

// Migrate creates the bank tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Item{}, &ItemTag{})
}

func (s *GormStore) Questions(ctx context.Context, moduleID string, key concept.Key, limit int) ([]*questiongen.Question, error) {
	var items []Item
	err := s.db.WithContext(ctx).
		Joins("JOIN item_tags ON item_tags.item_id = items.id").
		Where("items.module_id = ? AND items.verified = ? AND item_tags.concept_key = ?",
			moduleID, s.verified, string(key)).
		Preload("Tags").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("query bank items: %w", err)
	}

	questions := make([]*questiongen.Question, 0, len(items))
	for i := range items {
		q, err := toQuestion(&items[i], s.verified)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Put stores one item with its tags. Used by seeding and ingest tooling,
// not by the scheduler.
func (s *GormStore) Put(ctx context.Context, moduleID string, q *questiongen.Question) error {
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	item := Item{
		ID:            q.ID,
		ModuleID:      moduleID,
		Text:          q.Text,
		Options:       datatypes.JSON(opts),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
		Verified:      s.verified,
	}
	for _, label := range q.ConceptTags {
		item.Tags = append(item.Tags, ItemTag{
			ConceptKey: string(concept.Normalize(label)),
			Label:      label,
		})
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return fmt.Errorf("store bank item: %w", err)
	}
	return nil
}

func toQuestion(item *Item, verified bool) (*questiongen.Question, error) {
	var options []string
	if err := json.Unmarshal(item.Options, &options); err != nil {
		return nil, fmt.Errorf("unmarshal options for item %s: %w", item.ID, err)
	}

	tags := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		tags = append(tags, t.Label)
	}

	source := questiongen.SourceBank
	if verified {
		source = questiongen.SourceVerified
	}

	return &questiongen.Question{
		ID:            item.ID,
		Text:          item.Text,
		Options:       options,
		CorrectAnswer: item.CorrectAnswer,
		ConceptTags:   tags,
		SourceType:    source,
		Explanation:   item.Explanation,
		Difficulty:    item.Difficulty,
	}, nil
}
