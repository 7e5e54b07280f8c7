package admin

import (
	"gorm.io/gorm"

	"github.com/skillswap/api/internal/user"
)

// Report statuses.
const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
)

// Report is a complaint filed by one user against another. Bans resolve all
// of the reported user's pending reports.
type Report struct {
	gorm.Model
	ReporterUserID uint   `json:"reporter_user_id" gorm:"index;not null"`
	ReportedUserID uint   `json:"reported_user_id" gorm:"index;not null"`
	Reason         string `json:"reason" gorm:"not null"`
	Description    string `json:"description,omitempty" gorm:"type:text"`
	Status         string `json:"status" gorm:"not null;default:'pending'"`

	ReporterUser user.User `json:"reporter_user,omitempty" gorm:"foreignKey:ReporterUserID"`
	ReportedUser user.User `json:"reported_user,omitempty" gorm:"foreignKey:ReportedUserID"`
}

// PlatformMessage is an operator broadcast shown to every signed-in user.
type PlatformMessage struct {
	gorm.Model
	Title    string `json:"title" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text;not null"`
	AuthorID uint   `json:"author_id" gorm:"index;not null"`

	Author user.User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
