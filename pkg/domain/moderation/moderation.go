package moderation

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
)

type Status string

const (
	StatusSkipped          Status = "skipped"
	StatusNotModerated     Status = "not_moderated"
	StatusModerated        Status = "moderated"
	StatusAlreadyModerated Status = "already_moderated"
)

// Source records what triggered a moderation decision.
type Source string

const (
	SourceAutomated Source = "automated"
	SourceReport    Source = "report"
)

// Check names the classifier that produced a decision.
type Check string

const (
	CheckGeneral Check = "general"
	CheckRules   Check = "rules"
)

// Moderated carries everything the executor and the ledger need about a
// message found in violation.
type Moderated struct {
	Reason       string
	Check        Check
	Scope        scope.Scope
	MessageID    string
	EventIndex   int64
	MessageIndex int64
	SenderID     string
}

type Result struct {
	Status    Status
	Moderated *Moderated
}

func Skipped() Result { return Result{Status: StatusSkipped} }

func NotModerated() Result { return Result{Status: StatusNotModerated} }

func Flagged(m Moderated) Result { return Result{Status: StatusModerated, Moderated: &m} }

type CategoryViolation struct {
	Category string
	Score    float64
}

func (v CategoryViolation) String() string {
	return fmt.Sprintf("%s (%.2f)", v.Category, v.Score)
}

const violationsHeader = "Message flagged against the following categories:\n"

func SummariseViolations(violations []CategoryViolation) string {
	lines := make([]string, 0, len(violations)+1)
	lines = append(lines, violationsHeader)
	for _, v := range violations {
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "\n")
}

type Offender struct {
	SenderID string `gorm:"column:sender_id"`
	Count    int64  `gorm:"column:total"`
}
