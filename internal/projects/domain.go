package projects

import "time"

// Status is the lifecycle state of a project. Transitions are monotone:
// active -> expired (sweep) and active/expired -> archived (soft delete).
// archived is absorbing.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusArchived Status = "archived"
)

// Project represents a tracked project owned by a single user.
type Project struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"-"`
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	Status    Status     `json:"status"`
	ExpiredAt *time.Time `json:"expiredAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewProject carries the fields needed to create a project.
type NewProject struct {
	OwnerID   int64
	Name      string
	URL       string
	ExpiredAt *time.Time
}

// Patch describes a partial update. Nil fields are left unchanged. Status
// is deliberately absent: transitions happen only through dedicated
// operations so the lifecycle stays monotone.
type Patch struct {
	Name      *string
	URL       *string
	ExpiredAt *time.Time
}

// ListFilter scopes a listing to one owner, excluding archived rows.
// Search, when non-empty, is a case-normalised substring match against
// name OR url.
type ListFilter struct {
	OwnerID int64
	Search  string
	Limit   int
	Offset  int
}
