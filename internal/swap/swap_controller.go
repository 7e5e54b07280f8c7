package swap

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/internal/observability"
	"github.com/skillswap/api/pkg/responses"
	"github.com/skillswap/api/pkg/validator"
)

// SwapController handles swap request creation, listing, and the guarded
// status lifecycle. Every transition is authorized against the caller's role
// in the swap before the transition table is consulted.
type SwapController struct {
	repo SwapRepository
}

func NewSwapController(repo SwapRepository) *SwapController {
	return &SwapController{repo: repo}
}

// --- DTOs ---

type CreateSwapRequest struct {
	ProviderID     uint   `json:"provider_id" binding:"required"`
	OfferedSkillID uint   `json:"offered_skill_id" binding:"required"`
	WantedSkillID  uint   `json:"wanted_skill_id" binding:"required"`
	Message        string `json:"message" binding:"omitempty,max=2000"`
}

// --- Handlers ---

// CreateSwap godoc
// @Summary Send a swap request
// @Description Propose exchanging one of your offered skills for one of the provider's offered skills. The request starts in pending.
// @Tags Swaps
// @Accept json
// @Produce json
// @Param request body CreateSwapRequest true "Swap request details"
// @Success 201 {object} responses.SuccessResponse{data=SwapRequest}
// @Failure 400 {object} responses.ErrorResponse "Validation error, self-swap, or skill not owned by the stated party"
// @Failure 401 {object} responses.ErrorResponse
// @Router /swaps [post]
// @Security BearerAuth
func (sc *SwapController) CreateSwap(c *gin.Context) {
	requesterID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if req.ProviderID == requesterID {
		responses.BadRequest(c, "You cannot send a swap request to yourself")
		return
	}

	offered, err := sc.repo.UserOffersSkill(requesterID, req.OfferedSkillID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to verify offered skill", err.Error())
		return
	}
	if !offered {
		responses.BadRequest(c, "The offered skill must be one of your approved offered skills")
		return
	}

	wanted, err := sc.repo.UserOffersSkill(req.ProviderID, req.WantedSkillID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to verify wanted skill", err.Error())
		return
	}
	if !wanted {
		responses.BadRequest(c, "The wanted skill must be offered by the provider")
		return
	}

	request := SwapRequest{
		RequesterID:    requesterID,
		ProviderID:     req.ProviderID,
		OfferedSkillID: req.OfferedSkillID,
		WantedSkillID:  req.WantedSkillID,
		Message:        req.Message,
		Status:         StatusPending,
	}
	if err := sc.repo.Create(&request); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create swap request", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Swap request sent successfully", request)
}

// GetReceived godoc
// @Summary List swap requests received by the current user
// @Tags Swaps
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]SwapRequest}
// @Router /swaps/received [get]
// @Security BearerAuth
func (sc *SwapController) GetReceived(c *gin.Context) {
	sc.listFor(c, sc.repo.GetReceived)
}

// GetSent godoc
// @Summary List swap requests sent by the current user
// @Tags Swaps
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]SwapRequest}
// @Router /swaps/sent [get]
// @Security BearerAuth
func (sc *SwapController) GetSent(c *gin.Context) {
	sc.listFor(c, sc.repo.GetSent)
}

// GetCompleted godoc
// @Summary List completed swaps involving the current user
// @Tags Swaps
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]SwapRequest}
// @Router /swaps/completed [get]
// @Security BearerAuth
func (sc *SwapController) GetCompleted(c *gin.Context) {
	sc.listFor(c, sc.repo.GetCompletedFor)
}

func (sc *SwapController) listFor(c *gin.Context, fetch func(uint, int, int) ([]SwapRequest, int64, error)) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	requests, total, err := fetch(userID, page, pageSize)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch swap requests", err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", requests, total, page, pageSize)
}

// Accept godoc
// @Summary Accept a pending swap request
// @Description Only the provider can accept, and only from pending.
// @Tags Swaps
// @Produce json
// @Param swap_id path int true "Swap request ID"
// @Success 200 {object} responses.SuccessResponse{data=SwapRequest}
// @Failure 403 {object} responses.ErrorResponse "Caller is not the provider"
// @Failure 409 {object} responses.ErrorResponse "Transition not allowed from the current status"
// @Router /swaps/{swap_id}/accept [patch]
// @Security BearerAuth
func (sc *SwapController) Accept(c *gin.Context) {
	sc.transition(c, StatusAccepted, roleProvider)
}

// Reject godoc
// @Summary Reject a pending swap request
// @Description Only the provider can reject, and only from pending.
// @Tags Swaps
// @Produce json
// @Param swap_id path int true "Swap request ID"
// @Success 200 {object} responses.SuccessResponse{data=SwapRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /swaps/{swap_id}/reject [patch]
// @Security BearerAuth
func (sc *SwapController) Reject(c *gin.Context) {
	sc.transition(c, StatusRejected, roleProvider)
}

// Cancel godoc
// @Summary Cancel a pending swap request
// @Description Only the requester can cancel, and only from pending.
// @Tags Swaps
// @Produce json
// @Param swap_id path int true "Swap request ID"
// @Success 200 {object} responses.SuccessResponse{data=SwapRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /swaps/{swap_id}/cancel [patch]
// @Security BearerAuth
func (sc *SwapController) Cancel(c *gin.Context) {
	sc.transition(c, StatusCancelled, roleRequester)
}

// Complete godoc
// @Summary Mark an accepted swap as completed
// @Description Either participant can complete an accepted swap. Completion unlocks rating.
// @Tags Swaps
// @Produce json
// @Param swap_id path int true "Swap request ID"
// @Success 200 {object} responses.SuccessResponse{data=SwapRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /swaps/{swap_id}/complete [patch]
// @Security BearerAuth
func (sc *SwapController) Complete(c *gin.Context) {
	sc.transition(c, StatusCompleted, roleParticipant)
}

type transitionRole int

const (
	roleRequester transitionRole = iota
	roleProvider
	roleParticipant
)

func (sc *SwapController) transition(c *gin.Context, target Status, role transitionRole) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	swapID, err := strconv.ParseUint(c.Param("swap_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid swap request ID")
		return
	}

	request, err := sc.repo.GetByID(uint(swapID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch swap request", err.Error())
		return
	}
	if request == nil {
		responses.NotFound(c, "Swap request")
		return
	}

	switch role {
	case roleRequester:
		if request.RequesterID != userID {
			responses.Forbidden(c, "Only the requester can perform this action")
			return
		}
	case roleProvider:
		if request.ProviderID != userID {
			responses.Forbidden(c, "Only the provider can perform this action")
			return
		}
	case roleParticipant:
		if !request.Participant(userID) {
			responses.Forbidden(c, "Only a participant can perform this action")
			return
		}
	}

	if err := CheckTransition(request.Status, target); err != nil {
		var te *TransitionError
		if errors.As(err, &te) {
			responses.Conflict(c, te.Error())
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Transition check failed", err.Error())
		return
	}

	from := request.Status
	if err := sc.repo.UpdateStatus(request.ID, target); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update swap request", err.Error())
		return
	}
	observability.IncSwapTransition(string(from), string(target))

	updated, err := sc.repo.GetByID(request.ID)
	if err != nil || updated == nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to reload swap request", nil)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Swap request updated successfully", updated)
}
