package repository

import (
	"context"
	"errors"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type moderationEventRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewModerationEventRepository(db *gorm.DB) moderation.Repository {
	return &moderationEventRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Record relies on the (scope, message_id) primary key: concurrent callers race
// on the insert and exactly one of them observes a written row.
func (r *moderationEventRepository) Record(
	ctx context.Context,
	m moderation.Moderated,
	source moderation.Source,
) (bool, error) {
	now := r.now()
	event := moderation.NewEvent(m, source, now)

	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(event)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		inserted = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&moderation.SenderViolation{
			Scope:     event.Scope,
			MessageID: event.MessageID,
			SenderID:  m.SenderID,
			Timestamp: now,
		}).Error
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (r *moderationEventRepository) LoadReason(ctx context.Context, s scope.Scope, messageID string) (string, bool, error) {
	var event moderation.Event
	if err := r.db.WithContext(ctx).
		Where("scope = ? AND message_id = ?", s.Key(), messageID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return event.Reason, true, nil
}

func (r *moderationEventRepository) TopOffenders(ctx context.Context, s scope.Scope, limit int) ([]moderation.Offender, error) {
	if limit <= 0 {
		limit = moderation.DefaultTopOffendersLimit
	}
	var offenders []moderation.Offender
	if err := r.db.WithContext(ctx).
		Model(&moderation.SenderViolation{}).
		Select("sender_id, COUNT(*) AS total").
		Where("scope = ?", s.Key()).
		Group("sender_id").
		Order("total DESC, sender_id ASC").
		Limit(limit).
		Scan(&offenders).Error; err != nil {
		return nil, err
	}
	if offenders == nil {
		offenders = []moderation.Offender{}
	}
	return offenders, nil
}
