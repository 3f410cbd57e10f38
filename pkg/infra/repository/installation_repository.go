package repository

import (
	"context"
	"errors"

	domain "github.com/NeuralTrust/TrustMod/pkg/domain/errors"
	"github.com/NeuralTrust/TrustMod/pkg/domain/installation"
	"github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type installationRepository struct {
	db *gorm.DB
}

func NewInstallationRepository(db *gorm.DB) installation.Repository {
	return &installationRepository{
		db: db,
	}
}

func (r *installationRepository) Save(ctx context.Context, i *installation.Installation) error {
	if err := i.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location"}},
		DoUpdates: clause.AssignmentColumns([]string{"api_gateway", "command_permissions", "autonomous_permissions", "installed_at"}),
	}).Create(i).Error
}

func (r *installationRepository) Get(ctx context.Context, location string) (*installation.Installation, error) {
	var i installation.Installation
	if err := r.db.WithContext(ctx).
		Where("location = ?", location).
		First(&i).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("installation", location)
		}
		return nil, err
	}
	return &i, nil
}

// Delete removes the installation and every policy configured under it.
// Moderation history is kept.
func (r *installationRepository) Delete(ctx context.Context, location string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location = ?", location).Delete(&policy.Record{}).Error; err != nil {
			return err
		}
		result := tx.Where("location = ?", location).Delete(&installation.Installation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("installation", location)
		}
		return nil
	})
}
