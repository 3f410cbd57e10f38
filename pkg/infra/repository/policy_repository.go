package repository

import (
	"context"
	"errors"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type policyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) policy.Repository {
	return &policyRepository{
		db: db,
	}
}

func (r *policyRepository) Get(ctx context.Context, s scope.Scope) (*policy.Policy, error) {
	var record policy.Record
	if err := r.db.WithContext(ctx).
		Where("location = ? AND scope = ?", s.Location().Key(), s.Key()).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	p := record.Policy()
	return &p, nil
}

// Upsert inserts the default policy with the update applied. When a row
// already exists only the updated columns are overwritten.
func (r *policyRepository) Upsert(ctx context.Context, s scope.Scope, update policy.Update) error {
	if err := update.Validate(); err != nil {
		return err
	}
	record := policy.NewRecord(s.Location().Key(), s.Key(), policy.Default().Apply(update))
	record.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location"}, {Name: "scope"}},
		DoUpdates: clause.AssignmentColumns(update.Columns()),
	}).Create(record).Error
}
