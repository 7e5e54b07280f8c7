package rating

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/internal/swap"
	"github.com/skillswap/api/pkg/responses"
	"github.com/skillswap/api/pkg/validator"
)

// RatingController records feedback on completed swaps. The rated user is
// always derived as the other participant, never taken from the request body.
type RatingController struct {
	repo     RatingRepository
	swapRepo swap.SwapRepository
}

func NewRatingController(repo RatingRepository, swapRepo swap.SwapRepository) *RatingController {
	return &RatingController{repo: repo, swapRepo: swapRepo}
}

type CreateRatingRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"omitempty,max=2000"`
}

// CreateRating godoc
// @Summary Rate a completed swap
// @Description Submit one rating (1-5 plus optional feedback) for a completed swap you took part in.
// @Tags Ratings
// @Accept json
// @Produce json
// @Param swap_id path int true "Swap request ID"
// @Param rating body CreateRatingRequest true "Rating details"
// @Success 201 {object} responses.SuccessResponse{data=Rating}
// @Failure 400 {object} responses.ErrorResponse "Rating out of range"
// @Failure 403 {object} responses.ErrorResponse "Caller is not a participant"
// @Failure 409 {object} responses.ErrorResponse "Swap not completed, or already rated"
// @Router /swaps/{swap_id}/ratings [post]
// @Security BearerAuth
func (rc *RatingController) CreateRating(c *gin.Context) {
	raterID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	swapID, err := strconv.ParseUint(c.Param("swap_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid swap request ID")
		return
	}

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	request, err := rc.swapRepo.GetByID(uint(swapID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch swap request", err.Error())
		return
	}
	if request == nil {
		responses.NotFound(c, "Swap request")
		return
	}
	if !request.Participant(raterID) {
		responses.Forbidden(c, "Only a participant can rate this swap")
		return
	}
	if request.Status != swap.StatusCompleted {
		responses.Conflict(c, "Only completed swaps can be rated")
		return
	}

	exists, err := rc.repo.ExistsForSwapAndRater(request.ID, raterID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check existing ratings", err.Error())
		return
	}
	if exists {
		responses.Conflict(c, "You have already rated this swap")
		return
	}

	rating := Rating{
		SwapRequestID: request.ID,
		RaterID:       raterID,
		RatedID:       request.OtherParticipant(raterID),
		Rating:        req.Rating,
		Feedback:      req.Feedback,
	}
	if err := rc.repo.Create(&rating); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to save rating", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Rating submitted successfully", rating)
}

// GetUserRatings godoc
// @Summary List ratings received by a user
// @Tags Ratings
// @Produce json
// @Param user_id path int true "User ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Rating}
// @Router /users/{user_id}/ratings [get]
func (rc *RatingController) GetUserRatings(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
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

	ratings, total, err := rc.repo.GetForUser(uint(userID), page, pageSize)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch ratings", err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", ratings, total, page, pageSize)
}
