package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/internal/skill"
	"github.com/skillswap/api/internal/swap"
	"github.com/skillswap/api/internal/user"
	"github.com/skillswap/api/pkg/rmiddleware"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&skill.Skill{},
		&skill.UserSkillOffered{},
		&swap.SwapRequest{},
		&Report{},
		&PlatformMessage{},
	))

	// User 1 is the operator; 2 and 3 are regular members.
	require.NoError(t, db.Create(&user.User{Name: "Root", Email: "root@example.com", Password: "x", IsAdmin: true}).Error)
	require.NoError(t, db.Create(&user.User{Name: "Alice", Email: "alice@example.com", Password: "x"}).Error)
	require.NoError(t, db.Create(&user.User{Name: "Bob", Email: "bob@example.com", Password: "x"}).Error)
	return db
}

func setupAdminRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewAdminController(NewAdminRepository(db))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id, err := strconv.ParseUint(c.GetHeader("X-Test-User"), 10, 32); err == nil {
			c.Set(middleware.AuthUserIDKey, uint(id))
		}
		c.Next()
	})
	r.POST("/reports", controller.CreateReport)
	r.GET("/messages", controller.GetMessages)

	adminOnly := r.Group("/admin")
	adminOnly.Use(rmiddleware.AdminMiddleware(db))
	{
		adminOnly.GET("/stats", controller.GetStats)
		adminOnly.GET("/skills/pending", controller.GetPendingSkills)
		adminOnly.PATCH("/skills/:entry_id/approve", controller.ApproveSkill)
		adminOnly.PATCH("/skills/:entry_id/flag", controller.FlagSkill)
		adminOnly.DELETE("/skills/:entry_id", controller.RejectSkill)
		adminOnly.GET("/reports", controller.GetReportedUsers)
		adminOnly.GET("/reports/export", controller.ExportReport)
		adminOnly.PATCH("/users/:user_id/ban", controller.BanUser)
		adminOnly.PATCH("/users/:user_id/unban", controller.UnbanUser)
		adminOnly.POST("/messages", controller.BroadcastMessage)
	}
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

func TestAdminRoutesForbiddenForRegularUsers(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	rec := doJSON(router, http.MethodGet, "/admin/stats", 2, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodGet, "/admin/stats", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStatsAggregates(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	require.NoError(t, db.Create(&swap.SwapRequest{RequesterID: 2, ProviderID: 3, OfferedSkillID: 1, WantedSkillID: 2, Status: swap.StatusPending}).Error)
	require.NoError(t, db.Create(&swap.SwapRequest{RequesterID: 2, ProviderID: 3, OfferedSkillID: 1, WantedSkillID: 2, Status: swap.StatusAccepted}).Error)
	require.NoError(t, db.Create(&swap.SwapRequest{RequesterID: 2, ProviderID: 3, OfferedSkillID: 1, WantedSkillID: 2, Status: swap.StatusCompleted}).Error)
	require.NoError(t, db.Create(&swap.SwapRequest{RequesterID: 2, ProviderID: 3, OfferedSkillID: 1, WantedSkillID: 2, Status: swap.StatusRejected}).Error)
	require.NoError(t, db.Create(&Report{ReporterUserID: 2, ReportedUserID: 3, Reason: "spam", Status: ReportStatusPending}).Error)

	rec := doJSON(router, http.MethodGet, "/admin/stats", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data Stats `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(3), resp.Data.TotalUsers)
	assert.Equal(t, int64(2), resp.Data.ActiveSwaps)
	assert.Equal(t, int64(1), resp.Data.CompletedSwaps)
	assert.Equal(t, int64(1), resp.Data.PendingReports)
}

func TestSkillModerationCycle(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	guitar := skill.Skill{Name: "Guitar", Category: "Music"}
	require.NoError(t, db.Create(&guitar).Error)
	entry := skill.UserSkillOffered{UserID: 2, SkillID: guitar.ID, IsApproved: true}
	require.NoError(t, db.Create(&entry).Error)

	// Flag pulls the entry into the pending queue.
	rec := doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/skills/%d/flag", entry.ID), 1, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var pending struct {
		Data []skill.UserSkillOffered `json:"data"`
	}
	rec = doJSON(router, http.MethodGet, "/admin/skills/pending", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pending))
	require.Len(t, pending.Data, 1)
	assert.Equal(t, entry.ID, pending.Data[0].ID)

	// Approve restores it.
	rec = doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/skills/%d/approve", entry.ID), 1, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stored skill.UserSkillOffered
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.True(t, stored.IsApproved)

	// Reject removes the association but keeps the skill definition.
	rec = doJSON(router, http.MethodDelete, fmt.Sprintf("/admin/skills/%d", entry.ID), 1, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entryCount, skillCount int64
	require.NoError(t, db.Model(&skill.UserSkillOffered{}).Count(&entryCount).Error)
	require.NoError(t, db.Model(&skill.Skill{}).Count(&skillCount).Error)
	assert.Zero(t, entryCount)
	assert.Equal(t, int64(1), skillCount)
}

func TestSkillModerationMissingEntry(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	require.Equal(t, http.StatusNotFound, doJSON(router, http.MethodPatch, "/admin/skills/42/approve", 1, "").Code)
	require.Equal(t, http.StatusNotFound, doJSON(router, http.MethodDelete, "/admin/skills/42", 1, "").Code)
}

func TestCreateReportAndListReported(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	rec := doJSON(router, http.MethodPost, "/reports", 2, `{"reported_user_id":3,"reason":"Rude during a swap","description":"details"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Self-reports are rejected.
	rec = doJSON(router, http.MethodPost, "/reports", 2, `{"reported_user_id":2,"reason":"testing"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Data []ReportedUser `json:"data"`
	}
	rec = doJSON(router, http.MethodGet, "/admin/reports", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, uint(3), resp.Data[0].UserID)
	assert.Equal(t, "Bob", resp.Data[0].Name)
	assert.Equal(t, int64(1), resp.Data[0].ReportsCount)
}

func TestBanResolvesPendingReports(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	rec := doJSON(router, http.MethodPost, "/reports", 2, `{"reported_user_id":3,"reason":"spam"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPatch, "/admin/users/3/ban", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var banned user.User
	require.NoError(t, db.First(&banned, 3).Error)
	assert.True(t, banned.IsBanned)

	var pendingCount int64
	require.NoError(t, db.Model(&Report{}).Where("status = ?", ReportStatusPending).Count(&pendingCount).Error)
	assert.Zero(t, pendingCount)

	rec = doJSON(router, http.MethodPatch, "/admin/users/3/unban", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, db.First(&banned, 3).Error)
	assert.False(t, banned.IsBanned)
}

func TestBanMissingUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	rec := doJSON(router, http.MethodPatch, "/admin/users/999/ban", 1, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBroadcastMessagesVisibleToMembers(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	rec := doJSON(router, http.MethodPost, "/admin/messages", 1, `{"title":"Maintenance","content":"Down Sunday 02:00 UTC"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Regular members cannot publish.
	rec = doJSON(router, http.MethodPost, "/admin/messages", 2, `{"title":"Hi","content":"not allowed"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// But they can read.
	var resp struct {
		Data []PlatformMessage `json:"data"`
	}
	rec = doJSON(router, http.MethodGet, "/messages", 2, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Maintenance", resp.Data[0].Title)
	assert.Equal(t, "Root", resp.Data[0].Author.Name)
}

func TestExportUsersCSV(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	rec := doJSON(router, http.MethodGet, "/admin/reports/export?type=users", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Export-Ref"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 4) // header plus three users
	assert.True(t, strings.HasPrefix(lines[0], "id,name,email"))
	assert.Contains(t, lines[1], "root@example.com")
}

func TestExportUnknownTypeRejected(t *testing.T) {
	db := setupTestDB(t)
	router := setupAdminRouter(db)

	rec := doJSON(router, http.MethodGet, "/admin/reports/export?type=ratings", 1, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
