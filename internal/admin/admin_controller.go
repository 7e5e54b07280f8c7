package admin

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/pkg/responses"
	"github.com/skillswap/api/pkg/validator"
)

// AdminController serves the operator surface: aggregate stats, offered-skill
// moderation, user reports and bans, broadcast messages, and CSV exports.
type AdminController struct {
	repo AdminRepository
}

func NewAdminController(repo AdminRepository) *AdminController {
	return &AdminController{repo: repo}
}

// --- DTOs ---

type CreateReportRequest struct {
	ReportedUserID uint   `json:"reported_user_id" binding:"required"`
	Reason         string `json:"reason" binding:"required,min=3,max=200"`
	Description    string `json:"description" binding:"omitempty,max=2000"`
}

type BroadcastMessageRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=200"`
	Content string `json:"content" binding:"required,min=3,max=5000"`
}

// --- Stats ---

// GetStats godoc
// @Summary Aggregate platform stats
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Stats}
// @Router /admin/stats [get]
// @Security BearerAuth
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.repo.GetStats()
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to compute stats", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Stats retrieved successfully", stats)
}

// --- Skill moderation ---

// GetPendingSkills godoc
// @Summary List offered skills awaiting approval
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /admin/skills/pending [get]
// @Security BearerAuth
func (ac *AdminController) GetPendingSkills(c *gin.Context) {
	entries, err := ac.repo.GetPendingSkills()
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch pending skills", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Pending skills retrieved successfully", entries)
}

// ApproveSkill godoc
// @Summary Approve a flagged offered skill
// @Tags Admin
// @Produce json
// @Param entry_id path int true "Offered skill entry ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/skills/{entry_id}/approve [patch]
// @Security BearerAuth
func (ac *AdminController) ApproveSkill(c *gin.Context) {
	ac.setSkillApproval(c, true, "Skill approved successfully")
}

// FlagSkill godoc
// @Summary Revoke approval of an offered skill
// @Description Pulls the entry out of browse results and into the pending queue.
// @Tags Admin
// @Produce json
// @Param entry_id path int true "Offered skill entry ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/skills/{entry_id}/flag [patch]
// @Security BearerAuth
func (ac *AdminController) FlagSkill(c *gin.Context) {
	ac.setSkillApproval(c, false, "Skill flagged for review")
}

func (ac *AdminController) setSkillApproval(c *gin.Context, approved bool, message string) {
	entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid entry ID")
		return
	}

	affected, err := ac.repo.SetSkillApproval(uint(entryID), approved)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update skill approval", err.Error())
		return
	}
	if affected == 0 {
		responses.NotFound(c, "Offered skill")
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, nil)
}

// RejectSkill godoc
// @Summary Reject an offered skill
// @Description Removes the association entirely. The shared skill definition stays.
// @Tags Admin
// @Produce json
// @Param entry_id path int true "Offered skill entry ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/skills/{entry_id} [delete]
// @Security BearerAuth
func (ac *AdminController) RejectSkill(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid entry ID")
		return
	}

	affected, err := ac.repo.DeleteSkillEntry(uint(entryID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to reject skill", err.Error())
		return
	}
	if affected == 0 {
		responses.NotFound(c, "Offered skill")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skill rejected and removed", nil)
}

// --- Reports and bans ---

// CreateReport godoc
// @Summary Report a user
// @Description Any signed-in user can report another user with a reason.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body CreateReportRequest true "Report details"
// @Success 201 {object} responses.SuccessResponse{data=Report}
// @Failure 400 {object} responses.ErrorResponse
// @Router /reports [post]
// @Security BearerAuth
func (ac *AdminController) CreateReport(c *gin.Context) {
	reporterID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}
	if req.ReportedUserID == reporterID {
		responses.BadRequest(c, "You cannot report yourself")
		return
	}

	report := Report{
		ReporterUserID: reporterID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Description:    req.Description,
		Status:         ReportStatusPending,
	}
	if err := ac.repo.CreateReport(&report); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to file report", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Report filed successfully", report)
}

// GetReportedUsers godoc
// @Summary List users with pending reports
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]ReportedUser}
// @Router /admin/reports [get]
// @Security BearerAuth
func (ac *AdminController) GetReportedUsers(c *gin.Context) {
	rows, err := ac.repo.GetReportedUsers()
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch reported users", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Reported users retrieved successfully", rows)
}

// BanUser godoc
// @Summary Ban a user
// @Description Banned users disappear from browse results and lose API access.
// @Tags Admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/users/{user_id}/ban [patch]
// @Security BearerAuth
func (ac *AdminController) BanUser(c *gin.Context) {
	ac.setBanned(c, true, "User banned successfully")
}

// UnbanUser godoc
// @Summary Lift a user's ban
// @Tags Admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/users/{user_id}/unban [patch]
// @Security BearerAuth
func (ac *AdminController) UnbanUser(c *gin.Context) {
	ac.setBanned(c, false, "User unbanned successfully")
}

func (ac *AdminController) setBanned(c *gin.Context, banned bool, message string) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	affected, err := ac.repo.SetUserBanned(uint(userID), banned)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update ban status", err.Error())
		return
	}
	if affected == 0 {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, nil)
}

// --- Broadcast messages ---

// BroadcastMessage godoc
// @Summary Publish a platform-wide message
// @Tags Admin
// @Accept json
// @Produce json
// @Param message body BroadcastMessageRequest true "Message details"
// @Success 201 {object} responses.SuccessResponse{data=PlatformMessage}
// @Failure 400 {object} responses.ErrorResponse
// @Router /admin/messages [post]
// @Security BearerAuth
func (ac *AdminController) BroadcastMessage(c *gin.Context) {
	authorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req BroadcastMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	message := PlatformMessage{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}
	if err := ac.repo.CreateMessage(&message); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to publish message", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Message published successfully", message)
}

// GetMessages godoc
// @Summary Latest platform messages
// @Tags Messages
// @Produce json
// @Param limit query int false "Maximum messages to return" default(20)
// @Success 200 {object} responses.SuccessResponse{data=[]PlatformMessage}
// @Router /messages [get]
// @Security BearerAuth
func (ac *AdminController) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	messages, err := ac.repo.GetMessages(limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch messages", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Messages retrieved successfully", messages)
}

// --- Exports ---

// ExportReport godoc
// @Summary Download a CSV report
// @Description Streams a CSV of users or swap requests. The X-Export-Ref header carries a unique reference for the download.
// @Tags Admin
// @Produce text/csv
// @Param type query string true "Report type" Enums(users, swaps)
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} responses.ErrorResponse
// @Router /admin/reports/export [get]
// @Security BearerAuth
func (ac *AdminController) ExportReport(c *gin.Context) {
	reportType := c.Query("type")
	if reportType != "users" && reportType != "swaps" {
		responses.BadRequest(c, "Unknown report type, expected 'users' or 'swaps'")
		return
	}

	exportRef := uuid.NewString()
	filename := fmt.Sprintf("%s-%s-%s.csv", reportType, time.Now().Format("2006-01-02"), exportRef[:8])

	c.Header("X-Export-Ref", exportRef)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	switch reportType {
	case "users":
		users, err := ac.repo.GetAllUsers()
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to export users", err.Error())
			return
		}
		w.Write([]string{"id", "name", "email", "location", "is_public", "is_banned", "created_at"})
		for _, u := range users {
			w.Write([]string{
				strconv.FormatUint(uint64(u.ID), 10),
				u.Name,
				u.Email,
				u.Location,
				strconv.FormatBool(u.IsPublic),
				strconv.FormatBool(u.IsBanned),
				u.CreatedAt.Format(time.RFC3339),
			})
		}
	case "swaps":
		swaps, err := ac.repo.GetAllSwaps()
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to export swaps", err.Error())
			return
		}
		w.Write([]string{"id", "requester_id", "provider_id", "offered_skill_id", "wanted_skill_id", "status", "created_at", "updated_at"})
		for _, s := range swaps {
			w.Write([]string{
				strconv.FormatUint(uint64(s.ID), 10),
				strconv.FormatUint(uint64(s.RequesterID), 10),
				strconv.FormatUint(uint64(s.ProviderID), 10),
				strconv.FormatUint(uint64(s.OfferedSkillID), 10),
				strconv.FormatUint(uint64(s.WantedSkillID), 10),
				string(s.Status),
				s.CreatedAt.Format(time.RFC3339),
				s.UpdatedAt.Format(time.RFC3339),
			})
		}
	}
}
