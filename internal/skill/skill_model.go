package skill

import (
	"gorm.io/gorm"

	"github.com/skillswap/api/internal/user"
)

// Experience levels for offered skills.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// Urgency levels for wanted skills.
const (
	UrgencyLow    = "Low"
	UrgencyMedium = "Medium"
	UrgencyHigh   = "High"
)

// Skill is a shared, global skill definition. Skills are created ad hoc the
// first time any user references a new name and are never deleted.
type Skill struct {
	gorm.Model
	Name     string `json:"name" gorm:"uniqueIndex;not null"`
	Category string `json:"category,omitempty" gorm:"index"`
}

// UserSkillOffered links a user to a skill they can teach, with user-specific
// metadata. New rows are auto-approved; an admin can later revoke approval,
// which removes the row from browse results until re-approved.
type UserSkillOffered struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"index;not null"`
	SkillID         uint   `json:"skill_id" gorm:"index;not null"`
	Description     string `json:"description,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	IsApproved      bool   `json:"is_approved" gorm:"default:true"`

	User  user.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Skill Skill     `json:"skill" gorm:"foreignKey:SkillID"`
}

func (UserSkillOffered) TableName() string { return "user_skills_offered" }

// UserSkillWanted links a user to a skill they want to learn.
type UserSkillWanted struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	SkillID     uint   `json:"skill_id" gorm:"index;not null"`
	Description string `json:"description,omitempty"`
	Urgency     string `json:"urgency,omitempty"`

	User  user.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Skill Skill     `json:"skill" gorm:"foreignKey:SkillID"`
}

func (UserSkillWanted) TableName() string { return "user_skills_wanted" }
