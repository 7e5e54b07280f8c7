package admin

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/skillswap/api/internal/skill"
	"github.com/skillswap/api/internal/swap"
	"github.com/skillswap/api/internal/user"
)

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers     int64 `json:"total_users"`
	ActiveSwaps    int64 `json:"active_swaps"`
	CompletedSwaps int64 `json:"completed_swaps"`
	PendingReports int64 `json:"pending_reports"`
}

// ReportedUser aggregates pending reports against one user.
type ReportedUser struct {
	UserID       uint      `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ReportsCount int64     `json:"reports_count"`
	LastReport   time.Time `json:"last_report"`
}

type AdminRepository interface {
	GetStats() (*Stats, error)

	// Skill moderation
	GetPendingSkills() ([]skill.UserSkillOffered, error)
	SetSkillApproval(entryID uint, approved bool) (int64, error)
	DeleteSkillEntry(entryID uint) (int64, error)

	// Reports and bans
	CreateReport(report *Report) error
	GetReportedUsers() ([]ReportedUser, error)
	SetUserBanned(userID uint, banned bool) (int64, error)

	// Broadcast messages
	CreateMessage(message *PlatformMessage) error
	GetMessages(limit int) ([]PlatformMessage, error)

	// Export
	GetAllUsers() ([]user.User, error)
	GetAllSwaps() ([]swap.SwapRequest, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetStats() (*Stats, error) {
	stats := &Stats{}

	if err := r.db.Model(&user.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&swap.SwapRequest{}).
		Where("status IN ?", []swap.Status{swap.StatusPending, swap.StatusAccepted}).
		Count(&stats.ActiveSwaps).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&swap.SwapRequest{}).
		Where("status = ?", swap.StatusCompleted).
		Count(&stats.CompletedSwaps).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&Report{}).
		Where("status = ?", ReportStatusPending).
		Count(&stats.PendingReports).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *adminRepository) GetPendingSkills() ([]skill.UserSkillOffered, error) {
	var entries []skill.UserSkillOffered
	err := r.db.Preload("Skill").Preload("User").
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *adminRepository) SetSkillApproval(entryID uint, approved bool) (int64, error) {
	result := r.db.Model(&skill.UserSkillOffered{}).
		Where("id = ?", entryID).
		Update("is_approved", approved)
	return result.RowsAffected, result.Error
}

func (r *adminRepository) DeleteSkillEntry(entryID uint) (int64, error) {
	result := r.db.Delete(&skill.UserSkillOffered{}, entryID)
	return result.RowsAffected, result.Error
}

func (r *adminRepository) CreateReport(report *Report) error {
	return r.db.Create(report).Error
}

// GetReportedUsers groups pending reports by reported user, most recently
// reported first.
func (r *adminRepository) GetReportedUsers() ([]ReportedUser, error) {
	var rows []ReportedUser
	err := r.db.Model(&Report{}).
		Select("reports.reported_user_id AS user_id, users.name, users.email, COUNT(reports.id) AS reports_count, MAX(reports.created_at) AS last_report").
		Joins("JOIN users ON users.id = reports.reported_user_id").
		Where("reports.status = ?", ReportStatusPending).
		Group("reports.reported_user_id, users.name, users.email").
		Order("last_report DESC").
		Scan(&rows).Error
	return rows, err
}

var errUserNotFound = errors.New("user not found")

// SetUserBanned flips the ban flag. Banning also resolves the user's pending
// reports so they drop out of the moderation queue.
func (r *adminRepository) SetUserBanned(userID uint, banned bool) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&user.User{}).Where("id = ?", userID).Update("is_banned", banned)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return errUserNotFound
		}

		if banned {
			return tx.Model(&Report{}).
				Where("reported_user_id = ? AND status = ?", userID, ReportStatusPending).
				Update("status", ReportStatusResolved).Error
		}
		return nil
	})
	if errors.Is(err, errUserNotFound) {
		return 0, nil
	}
	return affected, err
}

func (r *adminRepository) CreateMessage(message *PlatformMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return err
	}
	return r.db.Preload("Author").First(message, message.ID).Error
}

func (r *adminRepository) GetMessages(limit int) ([]PlatformMessage, error) {
	var messages []PlatformMessage
	err := r.db.Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *adminRepository) GetAllUsers() ([]user.User, error) {
	var users []user.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *adminRepository) GetAllSwaps() ([]swap.SwapRequest, error) {
	var swaps []swap.SwapRequest
	err := r.db.Order("id ASC").Find(&swaps).Error
	return swaps, err
}
