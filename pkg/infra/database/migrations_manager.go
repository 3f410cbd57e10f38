package database

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var (
	migrationsRegistry = make(map[string]Migration)
	migrationsOrder    = make([]string, 0)
)

// RegisterMigration is meant to be called from init functions. IDs sort
// lexically, so they start with a date.
func RegisterMigration(m Migration) {
	if _, exists := migrationsRegistry[m.ID]; exists {
		panic(fmt.Sprintf("migration with ID %s already registered", m.ID))
	}
	migrationsRegistry[m.ID] = m
	migrationsOrder = append(migrationsOrder, m.ID)
}

type appliedMigration struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (appliedMigration) TableName() string {
	return "migration_version"
}

type MigrationsManager struct {
	db *gorm.DB
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db}
}

func (m *MigrationsManager) applied() (map[string]struct{}, error) {
	if err := m.db.AutoMigrate(&appliedMigration{}); err != nil {
		return nil, fmt.Errorf("ensure migrations table: %w", err)
	}
	var rows []appliedMigration
	if err := m.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	done := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		done[r.ID] = struct{}{}
	}
	return done, nil
}

// ApplyPending runs every registered migration not yet recorded, each in its
// own transaction.
func (m *MigrationsManager) ApplyPending() error {
	done, err := m.applied()
	if err != nil {
		return err
	}

	sort.Strings(migrationsOrder)
	for _, id := range migrationsOrder {
		if _, ok := done[id]; ok {
			continue
		}
		mig := migrationsRegistry[id]
		if mig.Up == nil {
			return fmt.Errorf("migration %s has no Up function", id)
		}
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
			}
			record := appliedMigration{ID: mig.ID, Name: mig.Name, AppliedAt: time.Now().UTC()}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("record migration %s: %w", mig.ID, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RollbackLast reverts the most recently applied migration.
func (m *MigrationsManager) RollbackLast() error {
	var last appliedMigration
	if err := m.db.Order("id DESC").Limit(1).Find(&last).Error; err != nil {
		return fmt.Errorf("load last migration: %w", err)
	}
	if last.ID == "" {
		return nil
	}
	mig, ok := migrationsRegistry[last.ID]
	if !ok || mig.Down == nil {
		return fmt.Errorf("migration %s cannot be rolled back", last.ID)
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := mig.Down(tx); err != nil {
			return fmt.Errorf("rollback migration %s: %w", mig.ID, err)
		}
		return tx.Delete(&appliedMigration{}, "id = ?", mig.ID).Error
	})
}
