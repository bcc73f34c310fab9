// Package models defines the server-side domain entities: agents,
// organizations, field reports and audit entries.
package models

import "time"

// Agent is a campaign member who can authenticate with phone number + PIN.
// Root admins additionally hold a separate root PIN hash used for
// time-boxed privilege escalation.
type Agent struct {
	ID             string
	OrganizationID string
	FullName       string
	PhoneNumber    string
	Role           string
	PINHash        []byte
	RootPINHash    []byte
	IsRootAdmin    bool
	Banned         bool
	CreatedAt      time.Time
}

// Organization groups agents under one campaign account.
type Organization struct {
	ID               string
	Name             string
	SubscriptionPlan string
	MaxUsers         int
	Active           bool
	CreatedAt        time.Time
}

// Report is the server-side record of a field report. The id is assigned by
// the client at capture time; submits are upserts keyed by it, which makes
// resubmission after an interrupted sync harmless.
type Report struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	AuthorID       string    `json:"author_id"`
	Category       string    `json:"category"`
	Notes          string    `json:"notes"`
	MetricValue    float64   `json:"metric_value"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	PhotoKey       string    `json:"photo_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Status         string    `json:"status"`
}

// AuditEntry records one privileged or security-relevant event. The audit
// log is write-only: entries are appended and listed, never updated or
// deleted.
type AuditEntry struct {
	ID         string
	ActorID    string
	Action     string
	TargetID   string
	OriginAddr string
	Details    string
	CreatedAt  time.Time
}
