package browse

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/api/pkg/responses"
)

// BrowseController serves the public user directory.
type BrowseController struct {
	repo BrowseRepository
}

func NewBrowseController(repo BrowseRepository) *BrowseController {
	return &BrowseController{repo: repo}
}

// BrowseUsers godoc
// @Summary Browse public users
// @Description List public, non-banned users with their approved offered skills. Search matches user name or skill name; category filters by offered-skill category.
// @Tags Browse
// @Produce json
// @Param search query string false "Search term for user name or skill name"
// @Param category query string false "Skill category filter, or 'all'"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]PublicProfile}
// @Failure 500 {object} responses.ErrorResponse
// @Router /users [get]
func (bc *BrowseController) BrowseUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	profiles, total, err := bc.repo.GetPublicUsers(c.Query("search"), c.Query("category"), page, pageSize)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch users", err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", profiles, total, page, pageSize)
}

// GetProfile godoc
// @Summary Get a public user profile
// @Tags Browse
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=PublicProfile}
// @Failure 404 {object} responses.ErrorResponse "Missing, private, or banned user"
// @Router /users/{user_id} [get]
func (bc *BrowseController) GetProfile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	profile, err := bc.repo.GetPublicProfile(uint(userID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch profile", err.Error())
		return
	}
	if profile == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", profile)
}
