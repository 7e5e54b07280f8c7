package skill

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/internal/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &Skill{}, &UserSkillOffered{}, &UserSkillWanted{}))

	require.NoError(t, db.Create(&user.User{Name: "Alice", Email: "alice@example.com", Password: "x"}).Error)
	require.NoError(t, db.Create(&user.User{Name: "Bob", Email: "bob@example.com", Password: "x"}).Error)
	return db
}

func setupSkillRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewSkillController(NewSkillRepository(db))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id, err := strconv.ParseUint(c.GetHeader("X-Test-User"), 10, 32); err == nil {
			c.Set(middleware.AuthUserIDKey, uint(id))
		}
		c.Next()
	})
	r.GET("/skills", controller.GetAllSkills)
	r.GET("/users/me/skills/offered", controller.GetMySkillsOffered)
	r.POST("/users/me/skills/offered", controller.AddSkillOffered)
	r.PUT("/users/me/skills/offered/:entry_id", controller.UpdateSkillOffered)
	r.DELETE("/users/me/skills/offered/:entry_id", controller.DeleteSkillOffered)
	r.GET("/users/me/skills/wanted", controller.GetMySkillsWanted)
	r.POST("/users/me/skills/wanted", controller.AddSkillWanted)
	r.PUT("/users/me/skills/wanted/:entry_id", controller.UpdateSkillWanted)
	r.DELETE("/users/me/skills/wanted/:entry_id", controller.DeleteSkillWanted)
	return r
}

func doJSON(router *gin.Engine, method, path string, actingUser uint, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if actingUser != 0 {
		req.Header.Set("X-Test-User", strconv.FormatUint(uint64(actingUser), 10))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAddSkillOfferedAutoApproves(t *testing.T) {
	db := setupTestDB(t)
	router := setupSkillRouter(db)

	body := `{"skill_name":"Guitar","category":"Music","description":"Ten years of playing","experience_level":"Advanced"}`
	rec := doJSON(router, http.MethodPost, "/users/me/skills/offered", 1, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data UserSkillOffered `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Data.IsApproved)
	assert.Equal(t, "Guitar", resp.Data.Skill.Name)

	var stored UserSkillOffered
	require.NoError(t, db.First(&stored, resp.Data.ID).Error)
	assert.True(t, stored.IsApproved)
}

func TestAddSkillOfferedReusesSkillDefinition(t *testing.T) {
	db := setupTestDB(t)
	router := setupSkillRouter(db)

	rec := doJSON(router, http.MethodPost, "/users/me/skills/offered", 1, `{"skill_name":"Guitar","category":"Music"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(router, http.MethodPost, "/users/me/skills/offered", 2, `{"skill_name":"Guitar","category":"Other"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var count int64
	require.NoError(t, db.Model(&Skill{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The original category sticks.
	var s Skill
	require.NoError(t, db.Where("name = ?", "Guitar").First(&s).Error)
	assert.Equal(t, "Music", s.Category)
}

func TestAddSkillOfferedRejectsUnknownLevel(t *testing.T) {
	db := setupTestDB(t)
	router := setupSkillRouter(db)

	rec := doJSON(router, http.MethodPost, "/users/me/skills/offered", 1, `{"skill_name":"Guitar","experience_level":"Grandmaster"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSkillOfferedOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	router := setupSkillRouter(db)

	rec := doJSON(router, http.MethodPost, "/users/me/skills/offered", 1, `{"skill_name":"Guitar"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data UserSkillOffered `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	path := fmt.Sprintf("/users/me/skills/offered/%d", created.Data.ID)

	rec = doJSON(router, http.MethodPut, path, 2, `{"description":"hijacked"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodPut, path, 1, `{"description":"Lessons for beginners","experience_level":"Expert"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored UserSkillOffered
	require.NoError(t, db.First(&stored, created.Data.ID).Error)
	assert.Equal(t, "Lessons for beginners", stored.Description)
	assert.Equal(t, LevelExpert, stored.ExperienceLevel)
}

func TestDeleteSkillOfferedScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	router := setupSkillRouter(db)

	rec := doJSON(router, http.MethodPost, "/users/me/skills/offered", 1, `{"skill_name":"Guitar"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data UserSkillOffered `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	path := fmt.Sprintf("/users/me/skills/offered/%d", created.Data.ID)

	// Someone else's delete looks like a missing row.
	rec = doJSON(router, http.MethodDelete, path, 2, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(router, http.MethodDelete, path, 1, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&UserSkillOffered{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWantedListRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	router := setupSkillRouter(db)

	rec := doJSON(router, http.MethodPost, "/users/me/skills/wanted", 1, `{"skill_name":"Spanish","category":"Languages","urgency":"High"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data []UserSkillWanted `json:"data"`
	}
	rec = doJSON(router, http.MethodGet, "/users/me/skills/wanted", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, UrgencyHigh, resp.Data[0].Urgency)
	assert.Equal(t, "Spanish", resp.Data[0].Skill.Name)

	// Another user's wanted list stays empty.
	var other struct {
		Data []UserSkillWanted `json:"data"`
	}
	rec = doJSON(router, http.MethodGet, "/users/me/skills/wanted", 2, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&other))
	assert.Empty(t, other.Data)
}

func TestGetAllSkillsFilteredByCategory(t *testing.T) {
	db := setupTestDB(t)
	router := setupSkillRouter(db)

	require.NoError(t, db.Create(&Skill{Name: "Guitar", Category: "Music"}).Error)
	require.NoError(t, db.Create(&Skill{Name: "Piano", Category: "Music"}).Error)
	require.NoError(t, db.Create(&Skill{Name: "Spanish", Category: "Languages"}).Error)

	var resp struct {
		Data []Skill `json:"data"`
	}
	rec := doJSON(router, http.MethodGet, "/skills?category=Music", 0, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Guitar", resp.Data[0].Name)

	rec = doJSON(router, http.MethodGet, "/skills?category=all", 0, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp.Data = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 3)
}

func TestFindOrCreateSkillRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillRepository(db)

	first, err := repo.FindOrCreateSkill("Photography", "Creative")
	require.NoError(t, err)
	second, err := repo.FindOrCreateSkill("Photography", "Something Else")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Creative", second.Category)
}
