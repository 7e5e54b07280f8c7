package browse

import (
	"errors"

	"gorm.io/gorm"

	"github.com/skillswap/api/internal/skill"
	"github.com/skillswap/api/internal/user"
)

// PublicProfile is a browsable user together with their skill associations.
type PublicProfile struct {
	user.User
	SkillsOffered []skill.UserSkillOffered `json:"skills_offered"`
	SkillsWanted  []skill.UserSkillWanted  `json:"skills_wanted,omitempty"`
}

type BrowseRepository interface {
	GetPublicUsers(searchTerm, category string, page, pageSize int) ([]PublicProfile, int64, error)
	GetPublicProfile(userID uint) (*PublicProfile, error)
}

type browseRepository struct {
	db *gorm.DB
}

func NewBrowseRepository(db *gorm.DB) BrowseRepository {
	return &browseRepository{db: db}
}

// GetPublicUsers returns public, non-banned users matched by a single
// query-time predicate: the search term against user name or approved
// offered-skill name, and the category against approved offered skills.
// Both filters run in the same query so results cannot depend on filter
// order.
func (r *browseRepository) GetPublicUsers(searchTerm, category string, page, pageSize int) ([]PublicProfile, int64, error) {
	query := r.db.Model(&user.User{}).Where("is_public = ? AND is_banned = ?", true, false)

	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		query = query.Where(
			`users.name ILIKE ? OR EXISTS (
				SELECT 1 FROM user_skills_offered uso
				JOIN skills s ON s.id = uso.skill_id
				WHERE uso.user_id = users.id
				  AND uso.deleted_at IS NULL
				  AND uso.is_approved = ?
				  AND s.name ILIKE ?
			)`, pattern, true, pattern)
	}
	if category != "" && category != "all" {
		query = query.Where(
			`EXISTS (
				SELECT 1 FROM user_skills_offered uso
				JOIN skills s ON s.id = uso.skill_id
				WHERE uso.user_id = users.id
				  AND uso.deleted_at IS NULL
				  AND uso.is_approved = ?
				  AND s.category = ?
			)`, true, category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []user.User
	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	profiles := make([]PublicProfile, len(users))
	ids := make([]uint, len(users))
	index := make(map[uint]int, len(users))
	for i, u := range users {
		profiles[i] = PublicProfile{User: u, SkillsOffered: []skill.UserSkillOffered{}}
		ids[i] = u.ID
		index[u.ID] = i
	}
	if len(ids) == 0 {
		return profiles, total, nil
	}

	var offered []skill.UserSkillOffered
	err := r.db.Preload("Skill").
		Where("user_id IN ? AND is_approved = ?", ids, true).
		Order("created_at DESC").
		Find(&offered).Error
	if err != nil {
		return nil, 0, err
	}
	for _, entry := range offered {
		if i, ok := index[entry.UserID]; ok {
			profiles[i].SkillsOffered = append(profiles[i].SkillsOffered, entry)
		}
	}

	return profiles, total, nil
}

// GetPublicProfile returns a single user's public profile with both skill
// lists. Private and banned users resolve to (nil, nil), same as missing.
func (r *browseRepository) GetPublicProfile(userID uint) (*PublicProfile, error) {
	var u user.User
	err := r.db.Where("id = ? AND is_public = ? AND is_banned = ?", userID, true, false).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	profile := &PublicProfile{User: u, SkillsOffered: []skill.UserSkillOffered{}}

	if err := r.db.Preload("Skill").
		Where("user_id = ? AND is_approved = ?", u.ID, true).
		Order("created_at DESC").
		Find(&profile.SkillsOffered).Error; err != nil {
		return nil, err
	}
	if err := r.db.Preload("Skill").
		Where("user_id = ?", u.ID).
		Order("created_at DESC").
		Find(&profile.SkillsWanted).Error; err != nil {
		return nil, err
	}

	return profile, nil
}
