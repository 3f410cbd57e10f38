package policy

import "time"

// Record is the persisted form of a Policy.
type Record struct {
	Location    string    `gorm:"column:location;primaryKey"`
	Scope       string    `gorm:"column:scope;primaryKey"`
	Moderating  bool      `gorm:"column:moderating;not null"`
	Rules       int       `gorm:"column:rules;not null"`
	Action      int       `gorm:"column:action;not null"`
	Reaction    *string   `gorm:"column:reaction"`
	Threshold   float64   `gorm:"column:threshold;not null"`
	Explanation int       `gorm:"column:explanation;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "policy"
}

func NewRecord(location, scope string, p Policy) *Record {
	r := &Record{
		Location:    location,
		Scope:       scope,
		Moderating:  p.Moderating,
		Rules:       int(p.Rules),
		Threshold:   p.Threshold,
		Explanation: int(p.Explanation),
	}
	switch a := p.Action.(type) {
	case Reaction:
		emoji := a.Emoji
		r.Action = ActionCodeReaction
		r.Reaction = &emoji
	case Deletion:
		r.Action = ActionCodeDeletion
	}
	return r
}

func (r *Record) Policy() Policy {
	var action Action = Deletion{}
	if r.Action != ActionCodeDeletion {
		emoji := DefaultReaction
		if r.Reaction != nil && *r.Reaction != "" {
			emoji = *r.Reaction
		}
		action = Reaction{Emoji: emoji}
	}
	return Policy{
		Moderating:  r.Moderating,
		Rules:       Rules(r.Rules),
		Threshold:   r.Threshold,
		Action:      action,
		Explanation: Explanation(r.Explanation),
	}
}

// Columns lists the columns an upsert of u must overwrite on conflict. An
// action change always rewrites the reaction too.
func (u Update) Columns() []string {
	var cols []string
	if u.Moderating != nil {
		cols = append(cols, "moderating")
	}
	if u.Rules != nil {
		cols = append(cols, "rules")
	}
	if u.Action != nil {
		cols = append(cols, "action", "reaction")
	}
	if u.Threshold != nil {
		cols = append(cols, "threshold")
	}
	if u.Explanation != nil {
		cols = append(cols, "explanation")
	}
	return append(cols, "updated_at")
}
