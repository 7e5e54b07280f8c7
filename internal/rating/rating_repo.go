package rating

import (
	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(rating *Rating) error
	ExistsForSwapAndRater(swapRequestID, raterID uint) (bool, error)
	GetForUser(userID uint, page, pageSize int) ([]Rating, int64, error)
	AverageForUser(userID uint) (float64, int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *Rating) error {
	if err := r.db.Create(rating).Error; err != nil {
		return err
	}
	return r.db.Preload("Rater").Preload("Rated").First(rating, rating.ID).Error
}

func (r *ratingRepository) ExistsForSwapAndRater(swapRequestID, raterID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Rating{}).
		Where("swap_request_id = ? AND rater_id = ?", swapRequestID, raterID).
		Count(&count).Error
	return count > 0, err
}

func (r *ratingRepository) GetForUser(userID uint, page, pageSize int) ([]Rating, int64, error) {
	var ratings []Rating
	var total int64

	query := r.db.Model(&Rating{}).Where("rated_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Rater").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// AverageForUser returns the mean rating received and the number of ratings.
func (r *ratingRepository) AverageForUser(userID uint) (float64, int64, error) {
	var total int64
	if err := r.db.Model(&Rating{}).Where("rated_id = ?", userID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}

	var avg float64
	err := r.db.Model(&Rating{}).
		Where("rated_id = ?", userID).
		Select("AVG(rating)").
		Row().Scan(&avg)
	return avg, total, err
}
