package swap

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/skillswap/api/internal/skill"
)

type SwapRepository interface {
	Create(request *SwapRequest) error
	GetByID(id uint) (*SwapRequest, error)
	GetReceived(userID uint, page, pageSize int) ([]SwapRequest, int64, error)
	GetSent(userID uint, page, pageSize int) ([]SwapRequest, int64, error)
	GetCompletedFor(userID uint, page, pageSize int) ([]SwapRequest, int64, error)
	UpdateStatus(id uint, status Status) error

	// Ownership lookups used to validate new requests.
	UserOffersSkill(userID, skillID uint) (bool, error)
}

type swapRepository struct {
	db *gorm.DB
}

func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func preloadAll(db *gorm.DB) *gorm.DB {
	return db.Preload("Requester").
		Preload("Provider").
		Preload("OfferedSkill").
		Preload("WantedSkill")
}

func (r *swapRepository) Create(request *SwapRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return err
	}
	return preloadAll(r.db).First(request, request.ID).Error
}

func (r *swapRepository) GetByID(id uint) (*SwapRequest, error) {
	var request SwapRequest
	err := preloadAll(r.db).First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *swapRepository) GetReceived(userID uint, page, pageSize int) ([]SwapRequest, int64, error) {
	return r.list(r.db.Model(&SwapRequest{}).Where("provider_id = ?", userID), "created_at DESC", page, pageSize)
}

func (r *swapRepository) GetSent(userID uint, page, pageSize int) ([]SwapRequest, int64, error) {
	return r.list(r.db.Model(&SwapRequest{}).Where("requester_id = ?", userID), "created_at DESC", page, pageSize)
}

func (r *swapRepository) GetCompletedFor(userID uint, page, pageSize int) ([]SwapRequest, int64, error) {
	query := r.db.Model(&SwapRequest{}).
		Where("status = ?", StatusCompleted).
		Where("requester_id = ? OR provider_id = ?", userID, userID)
	return r.list(query, "updated_at DESC", page, pageSize)
}

func (r *swapRepository) list(query *gorm.DB, order string, page, pageSize int) ([]SwapRequest, int64, error) {
	var requests []SwapRequest
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := preloadAll(query).Order(order).Offset(offset).Limit(pageSize).Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateStatus writes the new status and refreshes updated_at. Transition
// legality and caller authorization are checked at the controller boundary
// before this runs.
func (r *swapRepository) UpdateStatus(id uint, status Status) error {
	return r.db.Model(&SwapRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// UserOffersSkill reports whether the user has an approved offered
// association for the given skill.
func (r *swapRepository) UserOffersSkill(userID, skillID uint) (bool, error) {
	var count int64
	err := r.db.Model(&skill.UserSkillOffered{}).
		Where("user_id = ? AND skill_id = ? AND is_approved = ?", userID, skillID, true).
		Count(&count).Error
	return count > 0, err
}
