package migrations

import (
	"github.com/NeuralTrust/TrustMod/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250101_initial_schema",
		Name: "Create installations, policy and moderation tables",

		Up: func(db *gorm.DB) error {
			statements := []string{
				`CREATE TABLE IF NOT EXISTS installations (
					location               TEXT PRIMARY KEY,
					api_gateway            TEXT NOT NULL,
					command_permissions    JSONB,
					autonomous_permissions JSONB,
					installed_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE TABLE IF NOT EXISTS policy (
					location    TEXT NOT NULL REFERENCES installations(location) ON DELETE CASCADE,
					scope       TEXT NOT NULL,
					moderating  BOOLEAN NOT NULL DEFAULT TRUE,
					rules       INTEGER NOT NULL DEFAULT 0,
					action      INTEGER NOT NULL DEFAULT 0,
					reaction    TEXT,
					threshold   DOUBLE PRECISION NOT NULL DEFAULT 0.8,
					explanation INTEGER NOT NULL DEFAULT 0,
					updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (location, scope)
				);`,
				`CREATE TABLE IF NOT EXISTS moderation_events (
					scope         TEXT NOT NULL,
					message_id    TEXT NOT NULL,
					reason        TEXT NOT NULL,
					event_index   BIGINT NOT NULL,
					message_index BIGINT NOT NULL,
					source        TEXT NOT NULL DEFAULT 'automated',
					timestamp     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (scope, message_id)
				);`,
				`CREATE TABLE IF NOT EXISTS sender_violations (
					scope      TEXT NOT NULL,
					message_id TEXT NOT NULL,
					sender_id  TEXT NOT NULL,
					timestamp  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (scope, message_id, sender_id),
					FOREIGN KEY (scope, message_id) REFERENCES moderation_events(scope, message_id) ON DELETE CASCADE
				);`,
				`CREATE INDEX IF NOT EXISTS idx_sender_violations_scope_sender
				ON sender_violations (scope, sender_id);`,
				`CREATE TABLE IF NOT EXISTS message_reports (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					scope       TEXT NOT NULL,
					message_id  TEXT NOT NULL,
					reported_by TEXT NOT NULL,
					reported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_message_reports_unique
				ON message_reports (scope, message_id, reported_by);`,
			}
			for _, stmt := range statements {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`
				DROP TABLE IF EXISTS message_reports;
				DROP TABLE IF EXISTS sender_violations;
				DROP TABLE IF EXISTS moderation_events;
				DROP TABLE IF EXISTS policy;
				DROP TABLE IF EXISTS installations;
			`).Error
		},
	})
}
