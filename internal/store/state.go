package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/funnel"
)

// FunnelStateRow persists one learner/module funnel state as a JSON
// snapshot. The latest snapshot wins; history lives in the answer log.
type FunnelStateRow struct {
	LearnerID string `gorm:"primaryKey"`
	ModuleID  string `gorm:"primaryKey"`
	Snapshot  datatypes.JSON
	UpdatedAt time.Time
}

// StateRepo reads and writes funnel state snapshots.
type StateRepo struct {
	db *gorm.DB
}

// Save upserts the snapshot for the state's learner/module pair.
func (r *StateRepo) Save(ctx context.Context, state *funnel.State) error {
	data, err := state.Encode()
	if err != nil {
		return fmt.Errorf("encode funnel state: %w", err)
	}

	row := FunnelStateRow{
		LearnerID: state.LearnerID,
		ModuleID:  state.ModuleID,
		Snapshot:  datatypes.JSON(data),
		UpdatedAt: time.Now().UTC(),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "learner_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"snapshot", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save funnel state: %w", err)
	}
	return nil
}

// Load returns the state for a learner/module pair, or a fresh empty state
// when none has been persisted yet.
func (r *StateRepo) Load(ctx context.Context, learnerID, moduleID string) (*funnel.State, error) {
	var row FunnelStateRow
	err := r.db.WithContext(ctx).
		Where("learner_id = ? AND module_id = ?", learnerID, moduleID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return funnel.NewState(learnerID, moduleID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load funnel state: %w", err)
	}

	state, err := funnel.DecodeState(row.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("decode funnel state: %w", err)
	}
	return state, nil
}
