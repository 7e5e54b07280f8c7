package skill

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/pkg/responses"
	"github.com/skillswap/api/pkg/validator"
)

// SkillController handles skill definitions and a user's offered/wanted lists.
type SkillController struct {
	repo SkillRepository
}

func NewSkillController(repo SkillRepository) *SkillController {
	return &SkillController{repo: repo}
}

// --- DTOs ---

type AddSkillOfferedRequest struct {
	SkillName       string `json:"skill_name" binding:"required,min=2,max=100"`
	Category        string `json:"category" binding:"omitempty,max=100"`
	Description     string `json:"description" binding:"omitempty,max=1000"`
	ExperienceLevel string `json:"experience_level" binding:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

type UpdateSkillOfferedRequest struct {
	Description     string `json:"description" binding:"omitempty,max=1000"`
	ExperienceLevel string `json:"experience_level" binding:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

type AddSkillWantedRequest struct {
	SkillName   string `json:"skill_name" binding:"required,min=2,max=100"`
	Category    string `json:"category" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Urgency     string `json:"urgency" binding:"omitempty,oneof=Low Medium High"`
}

type UpdateSkillWantedRequest struct {
	Description string `json:"description" binding:"omitempty,max=1000"`
	Urgency     string `json:"urgency" binding:"omitempty,oneof=Low Medium High"`
}

// --- Skill handlers ---

// GetAllSkills godoc
// @Summary Get all skills
// @Description List every skill definition, optionally filtered by category
// @Tags Skills
// @Produce json
// @Param category query string false "Category filter, or 'all'"
// @Success 200 {object} responses.SuccessResponse{data=[]Skill}
// @Failure 500 {object} responses.ErrorResponse
// @Router /skills [get]
func (sc *SkillController) GetAllSkills(c *gin.Context) {
	skills, err := sc.repo.GetAllSkills(c.Query("category"))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch skills", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skills retrieved successfully", skills)
}

// --- Offered list handlers ---

// GetMySkillsOffered godoc
// @Summary List skills the current user offers
// @Tags Skills
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]UserSkillOffered}
// @Failure 401 {object} responses.ErrorResponse
// @Router /users/me/skills/offered [get]
// @Security BearerAuth
func (sc *SkillController) GetMySkillsOffered(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	entries, err := sc.repo.GetSkillsOffered(userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch offered skills", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Offered skills retrieved successfully", entries)
}

// AddSkillOffered godoc
// @Summary Add a skill the current user can teach
// @Description Resolves or creates the skill definition, then inserts the association. New entries are auto-approved.
// @Tags Skills
// @Accept json
// @Produce json
// @Param entry body AddSkillOfferedRequest true "Offered skill details"
// @Success 201 {object} responses.SuccessResponse{data=UserSkillOffered}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /users/me/skills/offered [post]
// @Security BearerAuth
func (sc *SkillController) AddSkillOffered(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req AddSkillOfferedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	s, err := sc.repo.FindOrCreateSkill(req.SkillName, req.Category)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to resolve skill", err.Error())
		return
	}

	entry := UserSkillOffered{
		UserID:          userID,
		SkillID:         s.ID,
		Description:     req.Description,
		ExperienceLevel: req.ExperienceLevel,
		IsApproved:      true,
	}
	if err := sc.repo.AddSkillOffered(&entry); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to add offered skill", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Offered skill added successfully", entry)
}

// UpdateSkillOffered godoc
// @Summary Edit an offered skill's description or experience level
// @Tags Skills
// @Accept json
// @Produce json
// @Param entry_id path int true "Offered skill entry ID"
// @Param entry body UpdateSkillOfferedRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=UserSkillOffered}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /users/me/skills/offered/{entry_id} [put]
// @Security BearerAuth
func (sc *SkillController) UpdateSkillOffered(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid entry ID")
		return
	}

	var req UpdateSkillOfferedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	entry, err := sc.repo.GetSkillOfferedByID(uint(entryID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch offered skill", err.Error())
		return
	}
	if entry == nil {
		responses.NotFound(c, "Offered skill")
		return
	}
	if entry.UserID != userID {
		responses.Forbidden(c, "You can only edit your own skills")
		return
	}

	entry.Description = req.Description
	entry.ExperienceLevel = req.ExperienceLevel
	if err := sc.repo.UpdateSkillOffered(entry); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update offered skill", err.Error())
		return
	}

	updated, err := sc.repo.GetSkillOfferedByID(entry.ID)
	if err != nil || updated == nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to reload offered skill", nil)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Offered skill updated successfully", updated)
}

// DeleteSkillOffered godoc
// @Summary Remove an offered skill
// @Tags Skills
// @Produce json
// @Param entry_id path int true "Offered skill entry ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /users/me/skills/offered/{entry_id} [delete]
// @Security BearerAuth
func (sc *SkillController) DeleteSkillOffered(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid entry ID")
		return
	}

	affected, err := sc.repo.DeleteSkillOffered(uint(entryID), userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to delete offered skill", err.Error())
		return
	}
	if affected == 0 {
		responses.NotFound(c, "Offered skill")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Offered skill deleted successfully", nil)
}

// --- Wanted list handlers ---

// GetMySkillsWanted godoc
// @Summary List skills the current user wants to learn
// @Tags Skills
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]UserSkillWanted}
// @Failure 401 {object} responses.ErrorResponse
// @Router /users/me/skills/wanted [get]
// @Security BearerAuth
func (sc *SkillController) GetMySkillsWanted(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	entries, err := sc.repo.GetSkillsWanted(userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch wanted skills", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Wanted skills retrieved successfully", entries)
}

// AddSkillWanted godoc
// @Summary Add a skill the current user wants to learn
// @Tags Skills
// @Accept json
// @Produce json
// @Param entry body AddSkillWantedRequest true "Wanted skill details"
// @Success 201 {object} responses.SuccessResponse{data=UserSkillWanted}
// @Failure 400 {object} responses.ErrorResponse
// @Router /users/me/skills/wanted [post]
// @Security BearerAuth
func (sc *SkillController) AddSkillWanted(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req AddSkillWantedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	s, err := sc.repo.FindOrCreateSkill(req.SkillName, req.Category)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to resolve skill", err.Error())
		return
	}

	entry := UserSkillWanted{
		UserID:      userID,
		SkillID:     s.ID,
		Description: req.Description,
		Urgency:     req.Urgency,
	}
	if err := sc.repo.AddSkillWanted(&entry); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to add wanted skill", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Wanted skill added successfully", entry)
}

// UpdateSkillWanted godoc
// @Summary Edit a wanted skill's description or urgency
// @Tags Skills
// @Accept json
// @Produce json
// @Param entry_id path int true "Wanted skill entry ID"
// @Param entry body UpdateSkillWantedRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=UserSkillWanted}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /users/me/skills/wanted/{entry_id} [put]
// @Security BearerAuth
func (sc *SkillController) UpdateSkillWanted(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid entry ID")
		return
	}

	var req UpdateSkillWantedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	entry, err := sc.repo.GetSkillWantedByID(uint(entryID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch wanted skill", err.Error())
		return
	}
	if entry == nil {
		responses.NotFound(c, "Wanted skill")
		return
	}
	if entry.UserID != userID {
		responses.Forbidden(c, "You can only edit your own skills")
		return
	}

	entry.Description = req.Description
	entry.Urgency = req.Urgency
	if err := sc.repo.UpdateSkillWanted(entry); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update wanted skill", err.Error())
		return
	}

	updated, err := sc.repo.GetSkillWantedByID(entry.ID)
	if err != nil || updated == nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to reload wanted skill", nil)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Wanted skill updated successfully", updated)
}

// DeleteSkillWanted godoc
// @Summary Remove a wanted skill
// @Tags Skills
// @Produce json
// @Param entry_id path int true "Wanted skill entry ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /users/me/skills/wanted/{entry_id} [delete]
// @Security BearerAuth
func (sc *SkillController) DeleteSkillWanted(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid entry ID")
		return
	}

	affected, err := sc.repo.DeleteSkillWanted(uint(entryID), userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to delete wanted skill", err.Error())
		return
	}
	if affected == 0 {
		responses.NotFound(c, "Wanted skill")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Wanted skill deleted successfully", nil)
}
