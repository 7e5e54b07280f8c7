package rating

import (
	"gorm.io/gorm"

	"github.com/skillswap/api/internal/swap"
	"github.com/skillswap/api/internal/user"
)

// Rating is one feedback entry per (swap, rater) pair. The composite unique
// index backs the one-rating-per-rater rule at the store level.
type Rating struct {
	gorm.Model
	SwapRequestID uint   `json:"swap_request_id" gorm:"not null;uniqueIndex:idx_swap_rater"`
	RaterID       uint   `json:"rater_id" gorm:"not null;uniqueIndex:idx_swap_rater;index"`
	RatedID       uint   `json:"rated_id" gorm:"not null;index"`
	Rating        int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Feedback      string `json:"feedback,omitempty" gorm:"type:text"`

	SwapRequest swap.SwapRequest `json:"swap_request,omitempty" gorm:"foreignKey:SwapRequestID"`
	Rater       user.User        `json:"rater,omitempty" gorm:"foreignKey:RaterID"`
	Rated       user.User        `json:"rated,omitempty" gorm:"foreignKey:RatedID"`
}
