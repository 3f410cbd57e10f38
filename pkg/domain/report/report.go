package report

import (
	"context"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is a member's request to moderate a message. A member can report the
// same message only once.
type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Scope      string    `gorm:"column:scope;not null;uniqueIndex:idx_message_reports_unique"`
	MessageID  string    `gorm:"column:message_id;not null;uniqueIndex:idx_message_reports_unique"`
	ReportedBy string    `gorm:"column:reported_by;not null;uniqueIndex:idx_message_reports_unique"`
	ReportedAt time.Time `gorm:"column:reported_at;not null"`
}

func (Report) TableName() string {
	return "message_reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.ReportedAt.IsZero() {
		r.ReportedAt = time.Now().UTC()
	}
	return nil
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=report_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	HasUserReported(ctx context.Context, s scope.Scope, messageID, userID string) (bool, error)
	// Record is idempotent; inserted is false when the member already reported the message.
	Record(ctx context.Context, s scope.Scope, messageID, userID string) (inserted bool, err error)
}
