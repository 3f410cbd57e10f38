package repository

import (
	"context"

	"github.com/NeuralTrust/TrustMod/pkg/domain/report"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{
		db: db,
	}
}

func (r *reportRepository) HasUserReported(ctx context.Context, s scope.Scope, messageID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&report.Report{}).
		Where("scope = ? AND message_id = ? AND reported_by = ?", s.Key(), messageID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reportRepository) Record(ctx context.Context, s scope.Scope, messageID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&report.Report{
			Scope:      s.Key(),
			MessageID:  messageID,
			ReportedBy: userID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
