package swap

import (
	"gorm.io/gorm"

	"github.com/skillswap/api/internal/skill"
	"github.com/skillswap/api/internal/user"
)

// SwapRequest is a proposal by the requester to exchange a skill they offer
// for a skill the provider offers. Requests are never deleted; cancel and
// reject are statuses, not removal.
type SwapRequest struct {
	gorm.Model
	RequesterID    uint   `json:"requester_id" gorm:"index;not null"`
	ProviderID     uint   `json:"provider_id" gorm:"index;not null"`
	OfferedSkillID uint   `json:"offered_skill_id" gorm:"index;not null"`
	WantedSkillID  uint   `json:"wanted_skill_id" gorm:"index;not null"`
	Message        string `json:"message,omitempty" gorm:"type:text"`
	Status         Status `json:"status" gorm:"index;not null;default:'pending'"`

	Requester    user.User   `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Provider     user.User   `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	OfferedSkill skill.Skill `json:"offered_skill,omitempty" gorm:"foreignKey:OfferedSkillID"`
	WantedSkill  skill.Skill `json:"wanted_skill,omitempty" gorm:"foreignKey:WantedSkillID"`
}

// Participant reports whether userID is the requester or the provider.
func (s *SwapRequest) Participant(userID uint) bool {
	return s.RequesterID == userID || s.ProviderID == userID
}

// OtherParticipant returns the counterpart of userID in the swap, or zero
// when userID is not a participant.
func (s *SwapRequest) OtherParticipant(userID uint) uint {
	switch userID {
	case s.RequesterID:
		return s.ProviderID
	case s.ProviderID:
		return s.RequesterID
	}
	return 0
}
