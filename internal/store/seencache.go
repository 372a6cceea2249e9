package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeenFingerprint is one persisted seen-set entry. The on-disk copy seeds
// the in-process cache at startup, so cross-session dedup works even when
// the remote store is unreachable.
type SeenFingerprint struct {
	ID          uint   `gorm:"primaryKey"`
	LearnerID   string `gorm:"uniqueIndex:idx_seen_fp"`
	ModuleID    string `gorm:"uniqueIndex:idx_seen_fp"`
	Fingerprint string `gorm:"uniqueIndex:idx_seen_fp"`
}

// SeenCacheRepo persists local seen-set fingerprints. Append-only: rows
// are inserted and read, never deleted.
type SeenCacheRepo struct {
	db *gorm.DB
}

// Save inserts fingerprints, ignoring ones already present.
func (r *SeenCacheRepo) Save(ctx context.Context, learnerID, moduleID string, fps []string) error {
	if len(fps) == 0 {
		return nil
	}

	rows := make([]SeenFingerprint, 0, len(fps))
	for _, fp := range fps {
		rows = append(rows, SeenFingerprint{
			LearnerID:   learnerID,
			ModuleID:    moduleID,
			Fingerprint: fp,
		})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("save seen fingerprints: %w", err)
	}
	return nil
}

// Load returns every persisted fingerprint for a learner/module pair.
func (r *SeenCacheRepo) Load(ctx context.Context, learnerID, moduleID string) ([]string, error) {
	var fps []string
	err := r.db.WithContext(ctx).Model(&SeenFingerprint{}).
		Where("learner_id = ? AND module_id = ?", learnerID, moduleID).
		Pluck("fingerprint", &fps).Error
	if err != nil {
		return nil, fmt.Errorf("load seen fingerprints: %w", err)
	}
	return fps, nil
}

// Count returns the persisted seen-set size for a learner/module pair.
func (r *SeenCacheRepo) Count(ctx context.Context, learnerID, moduleID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&SeenFingerprint{}).
		Where("learner_id = ? AND module_id = ?", learnerID, moduleID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count seen fingerprints: %w", err)
	}
	return n, nil
}
