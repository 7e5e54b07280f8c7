package browse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skillswap/api/internal/skill"
	"github.com/skillswap/api/internal/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &skill.Skill{}, &skill.UserSkillOffered{}, &skill.UserSkillWanted{}))
	return db
}

func setupBrowseRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewBrowseController(NewBrowseRepository(db))

	r := gin.New()
	r.GET("/users", controller.BrowseUsers)
	r.GET("/users/:user_id", controller.GetProfile)
	return r
}

// seedDirectory creates a public user with an approved skill, a public user
// with an unapproved skill, a private user, and a banned user.
func seedDirectory(t *testing.T, db *gorm.DB) {
	t.Helper()

	alice := user.User{Name: "Alice", Email: "alice@example.com", Password: "x", IsPublic: true}
	bob := user.User{Name: "Bob", Email: "bob@example.com", Password: "x", IsPublic: true}
	carol := user.User{Name: "Carol", Email: "carol@example.com", Password: "x", IsPublic: false}
	dave := user.User{Name: "Dave", Email: "dave@example.com", Password: "x", IsPublic: true, IsBanned: true}
	for _, u := range []*user.User{&alice, &bob, &carol, &dave} {
		require.NoError(t, db.Create(u).Error)
	}

	guitar := skill.Skill{Name: "Guitar", Category: "Music"}
	spanish := skill.Skill{Name: "Spanish", Category: "Languages"}
	require.NoError(t, db.Create(&guitar).Error)
	require.NoError(t, db.Create(&spanish).Error)

	require.NoError(t, db.Create(&skill.UserSkillOffered{UserID: alice.ID, SkillID: guitar.ID, IsApproved: true}).Error)
	require.NoError(t, db.Create(&skill.UserSkillOffered{UserID: bob.ID, SkillID: spanish.ID, IsApproved: false}).Error)
	require.NoError(t, db.Create(&skill.UserSkillWanted{UserID: alice.ID, SkillID: spanish.ID, Urgency: skill.UrgencyHigh}).Error)
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBrowseExcludesPrivateAndBanned(t *testing.T) {
	db := setupTestDB(t)
	router := setupBrowseRouter(db)
	seedDirectory(t, db)

	rec := get(router, "/users")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []PublicProfile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)

	names := []string{resp.Data[0].Name, resp.Data[1].Name}
	assert.Contains(t, names, "Alice")
	assert.Contains(t, names, "Bob")
	assert.NotContains(t, names, "Carol")
	assert.NotContains(t, names, "Dave")
}

func TestBrowseOnlyApprovedSkillsListed(t *testing.T) {
	db := setupTestDB(t)
	router := setupBrowseRouter(db)
	seedDirectory(t, db)

	rec := get(router, "/users")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []PublicProfile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	for _, profile := range resp.Data {
		switch profile.Name {
		case "Alice":
			require.Len(t, profile.SkillsOffered, 1)
			assert.Equal(t, "Guitar", profile.SkillsOffered[0].Skill.Name)
		case "Bob":
			// Bob's only skill is unapproved, so his list is empty.
			assert.Empty(t, profile.SkillsOffered)
		}
	}
}

func TestBrowseCategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	router := setupBrowseRouter(db)
	seedDirectory(t, db)

	rec := get(router, "/users?category=Music")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []PublicProfile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Alice", resp.Data[0].Name)

	// Bob's Spanish entry is unapproved, so the Languages filter matches no one.
	rec = get(router, "/users?category=Languages")
	require.Equal(t, http.StatusOK, rec.Code)
	resp.Data = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Data)
}

func TestBrowsePagination(t *testing.T) {
	db := setupTestDB(t)
	router := setupBrowseRouter(db)
	seedDirectory(t, db)

	rec := get(router, "/users?page=1&pageSize=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data       []PublicProfile `json:"data"`
		Pagination struct {
			TotalItems  int64 `json:"total_items"`
			TotalPages  int   `json:"total_pages"`
			HasNextPage bool  `json:"has_next_page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(2), resp.Pagination.TotalItems)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNextPage)
}

func TestGetProfilePublic(t *testing.T) {
	db := setupTestDB(t)
	router := setupBrowseRouter(db)
	seedDirectory(t, db)

	rec := get(router, "/users/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data PublicProfile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Alice", resp.Data.Name)
	require.Len(t, resp.Data.SkillsOffered, 1)
	require.Len(t, resp.Data.SkillsWanted, 1)
	assert.Equal(t, "Spanish", resp.Data.SkillsWanted[0].Skill.Name)
}

func TestGetProfileHidesPrivateAndBanned(t *testing.T) {
	db := setupTestDB(t)
	router := setupBrowseRouter(db)
	seedDirectory(t, db)

	// Carol is private, Dave is banned; both read as not found.
	require.Equal(t, http.StatusNotFound, get(router, "/users/3").Code)
	require.Equal(t, http.StatusNotFound, get(router, "/users/4").Code)
	require.Equal(t, http.StatusNotFound, get(router, "/users/999").Code)
}
