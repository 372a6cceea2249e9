package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerEvent is one answered question, appended for every answer the
// scheduler records. The log is never rewritten; stats and recency data
// read from it.
type AnswerEvent struct {
	ID         uint   `gorm:"primaryKey"`
	LearnerID  string `gorm:"index:idx_answer_scope"`
	ModuleID   string `gorm:"index:idx_answer_scope"`
	BatchID    string
	QuestionID string
	Correct    bool
	Tags       datatypes.JSON
	CreatedAt  time.Time
}

// AnswerRepo appends and reads answer events.
type AnswerRepo struct {
	db *gorm.DB
}

// Append records one answered question.
func (r *AnswerRepo) Append(ctx context.Context, learnerID, moduleID, batchID, questionID string, tags []string, correct bool) error {
	tagData, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	event := AnswerEvent{
		LearnerID:  learnerID,
		ModuleID:   moduleID,
		BatchID:    batchID,
		QuestionID: questionID,
		Correct:    correct,
		Tags:       datatypes.JSON(tagData),
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

// Recent returns the latest events for a learner/module pair, newest first.
func (r *AnswerRepo) Recent(ctx context.Context, learnerID, moduleID string, limit int) ([]AnswerEvent, error) {
	var events []AnswerEvent
	err := r.db.WithContext(ctx).
		Where("learner_id = ? AND module_id = ?", learnerID, moduleID).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return events, nil
}

// Count returns the total answers recorded for a learner/module pair.
func (r *AnswerRepo) Count(ctx context.Context, learnerID, moduleID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&AnswerEvent{}).
		Where("learner_id = ? AND module_id = ?", learnerID, moduleID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count answer events: %w", err)
	}
	return n, nil
}
