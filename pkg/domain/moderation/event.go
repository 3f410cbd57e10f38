package moderation

import "time"

type Event struct {
	Scope        string    `gorm:"column:scope;primaryKey"`
	MessageID    string    `gorm:"column:message_id;primaryKey"`
	Reason       string    `gorm:"column:reason;not null"`
	EventIndex   int64     `gorm:"column:event_index;not null"`
	MessageIndex int64     `gorm:"column:message_index;not null"`
	Source       Source    `gorm:"column:source;not null;default:automated"`
	Timestamp    time.Time `gorm:"column:timestamp;not null"`
}

func (Event) TableName() string {
	return "moderation_events"
}

type SenderViolation struct {
	Scope     string    `gorm:"column:scope;primaryKey"`
	MessageID string    `gorm:"column:message_id;primaryKey"`
	SenderID  string    `gorm:"column:sender_id;primaryKey;index"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
}

func (SenderViolation) TableName() string {
	return "sender_violations"
}

func NewEvent(m Moderated, source Source, now time.Time) *Event {
	if source == "" {
		source = SourceAutomated
	}
	return &Event{
		Scope:        m.Scope.Key(),
		MessageID:    m.MessageID,
		Reason:       m.Reason,
		EventIndex:   m.EventIndex,
		MessageIndex: m.MessageIndex,
		Source:       source,
		Timestamp:    now,
	}
}
