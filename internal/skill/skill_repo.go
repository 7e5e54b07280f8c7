package skill

import (
	"errors"

	"gorm.io/gorm"
)

type SkillRepository interface {
	// Skill methods
	FindOrCreateSkill(name, category string) (*Skill, error)
	GetSkillByID(id uint) (*Skill, error)
	GetAllSkills(category string) ([]Skill, error)

	// Offered association methods
	AddSkillOffered(entry *UserSkillOffered) error
	GetSkillsOffered(userID uint) ([]UserSkillOffered, error)
	GetSkillOfferedByID(id uint) (*UserSkillOffered, error)
	UpdateSkillOffered(entry *UserSkillOffered) error
	DeleteSkillOffered(id, userID uint) (int64, error)

	// Wanted association methods
	AddSkillWanted(entry *UserSkillWanted) error
	GetSkillsWanted(userID uint) ([]UserSkillWanted, error)
	GetSkillWantedByID(id uint) (*UserSkillWanted, error)
	UpdateSkillWanted(entry *UserSkillWanted) error
	DeleteSkillWanted(id, userID uint) (int64, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new instance of SkillRepository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

// --- Skill methods ---

// FindOrCreateSkill resolves a skill by name, creating it when missing.
// The category of an existing skill is left untouched.
func (r *skillRepository) FindOrCreateSkill(name, category string) (*Skill, error) {
	var s Skill
	err := r.db.Where("name = ?", name).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = Skill{Name: name, Category: category}
	if err := r.db.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *skillRepository) GetSkillByID(id uint) (*Skill, error) {
	var s Skill
	err := r.db.First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *skillRepository) GetAllSkills(category string) ([]Skill, error) {
	var skills []Skill
	query := r.db.Model(&Skill{})
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("name ASC").Find(&skills).Error
	return skills, err
}

// --- Offered association methods ---

func (r *skillRepository) AddSkillOffered(entry *UserSkillOffered) error {
	if err := r.db.Create(entry).Error; err != nil {
		return err
	}
	return r.db.Preload("Skill").First(entry, entry.ID).Error
}

func (r *skillRepository) GetSkillsOffered(userID uint) ([]UserSkillOffered, error) {
	var entries []UserSkillOffered
	err := r.db.Preload("Skill").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *skillRepository) GetSkillOfferedByID(id uint) (*UserSkillOffered, error) {
	var entry UserSkillOffered
	err := r.db.Preload("Skill").First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *skillRepository) UpdateSkillOffered(entry *UserSkillOffered) error {
	return r.db.Model(&UserSkillOffered{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"description":      entry.Description,
			"experience_level": entry.ExperienceLevel,
		}).Error
}

// DeleteSkillOffered removes an association scoped to its owner. The returned
// count is zero when the row does not exist or belongs to someone else.
func (r *skillRepository) DeleteSkillOffered(id, userID uint) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&UserSkillOffered{})
	return result.RowsAffected, result.Error
}

// --- Wanted association methods ---

func (r *skillRepository) AddSkillWanted(entry *UserSkillWanted) error {
	if err := r.db.Create(entry).Error; err != nil {
		return err
	}
	return r.db.Preload("Skill").First(entry, entry.ID).Error
}

func (r *skillRepository) GetSkillsWanted(userID uint) ([]UserSkillWanted, error) {
	var entries []UserSkillWanted
	err := r.db.Preload("Skill").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *skillRepository) GetSkillWantedByID(id uint) (*UserSkillWanted, error) {
	var entry UserSkillWanted
	err := r.db.Preload("Skill").First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *skillRepository) UpdateSkillWanted(entry *UserSkillWanted) error {
	return r.db.Model(&UserSkillWanted{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"description": entry.Description,
			"urgency":     entry.Urgency,
		}).Error
}

func (r *skillRepository) DeleteSkillWanted(id, userID uint) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&UserSkillWanted{})
	return result.RowsAffected, result.Error
}
