package models

import (
	"time"

	"gorm.io/gorm"
)

// FormState is the lifecycle state of a survey form. The integer codes are
// stored as-is and exposed over the API.
type FormState int

const (
	FormStateDeleted         FormState = 0
	FormStatePendingApproval FormState = 1
	FormStatePublished       FormState = 2
	FormStateRejected        FormState = 3
	FormStateCompleted       FormState = 4
)

// formTransitions is the complete set of legal lifecycle transitions.
// Rejection is terminal: there is no path back to PendingApproval.
var formTransitions = map[FormState][]FormState{
	FormStatePendingApproval: {FormStatePublished, FormStateRejected, FormStateDeleted},
	FormStatePublished:       {FormStateCompleted, FormStateDeleted},
	FormStateRejected:        {FormStateDeleted},
	FormStateCompleted:       {FormStateDeleted},
}

// CanTransition reports whether moving from one lifecycle state to another
// is legal. Deletion legality is further guarded by the response count,
// which is checked in the service layer.
func (s FormState) CanTransition(to FormState) bool {
	for _, next := range formTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s FormState) String() string {
	switch s {
	case FormStateDeleted:
		return "deleted"
	case FormStatePendingApproval:
		return "pending_approval"
	case FormStatePublished:
		return "published"
	case FormStateRejected:
		return "rejected"
	case FormStateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type Form struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	State       FormState `gorm:"not null;default:1" json:"state"`
	CreatorID   uint64    `gorm:"not null" json:"creator_id"`
	CompanyID   uint64    `json:"company_id"`
	// ShareCode grants unauthenticated access to published forms.
	ShareCode string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"share_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator Employee    `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Fields  []FormField `gorm:"foreignKey:FormID" json:"fields,omitempty"`
}
