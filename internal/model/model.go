package model

import "time"

type Status string

const (
	StatusQueued      Status = "QUEUED"
	StatusUrgent      Status = "URGENT"
	StatusInAttention Status = "IN_ATTENTION"
	StatusCompleted   Status = "COMPLETED"
)

// Statuses lists every status in menu order.
var Statuses = []Status{StatusQueued, StatusUrgent, StatusInAttention, StatusCompleted}

// Case is a read-only snapshot of a desk case, used for output and export.
type Case struct {
	ID      int      `json:"id" yaml:"id"`
	Student string   `json:"student" yaml:"student"`
	Status  Status   `json:"status" yaml:"status"`
	Urgent  bool     `json:"urgent" yaml:"urgent"`
	Notes   []string `json:"notes" yaml:"notes"`
}

type StatusChange struct {
	CaseID int    `json:"caseId" yaml:"caseId"`
	From   Status `json:"from" yaml:"from"`
	To     Status `json:"to" yaml:"to"`
}

// Ticket is the record handed to exporters when a case is finalized.
type Ticket struct {
	Case `yaml:",inline"`

	CompletedAt time.Time `json:"completedAt" yaml:"completedAt"`
	// SessionID identifies the desk run that finalized the case.
	SessionID string `json:"sessionId,omitempty" yaml:"sessionId,omitempty"`
}

// TicketFile describes an exported ticket file on disk.
type TicketFile struct {
	ID       int       `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"`
	Size     int64     `json:"size" yaml:"size"`
	Modified time.Time `json:"modified" yaml:"modified"`
}
