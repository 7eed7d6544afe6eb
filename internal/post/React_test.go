package post

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RXAliman/scrunch/config"
	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/svc"
	"github.com/RXAliman/scrunch/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
	))
	return db
}

func newTestHandler(t *testing.T) (*PostHandler, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{
		SessionSecretKey:  "test-secret",
		SessionIssuer:     "scrunch",
		SessionExpiration: time.Hour,
	}
	return NewPostHandler(&svc.ServiceContext{Config: cfg, DB: db}), db
}

func routerAs(h *PostHandler, viewer models.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if viewer.Authenticated {
			utils.SetViewer(c, viewer)
		}
		c.Next()
	})
	r.POST("/post/:id/react", h.React)
	r.DELETE("/post/:id/delete", h.Delete)
	return r
}

func seedPost(t *testing.T, db *gorm.DB, accountID uint) models.Post {
	t.Helper()
	author := models.Profile{FirstName: "Ada", LastName: "Byron", Email: "ada@example.com"}
	require.NoError(t, db.FirstOrCreate(&author, models.Profile{Email: "ada@example.com"}).Error)
	p := models.Post{
		AccountID: accountID,
		Caption:   "a post",
		ImageURL:  "http://img/a.jpg",
		Timestamp: time.Now().UnixMilli(),
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

type reactResponse struct {
	Success       bool   `json:"success"`
	ReactionCount int    `json:"reactionCount"`
	Reacted       bool   `json:"reacted"`
	Message       string `json:"message"`
}

func doReact(t *testing.T, r *gin.Engine, postID uint) (int, reactResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/post/%d/react", postID), nil)
	r.ServeHTTP(w, req)

	var body reactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestReact_TogglePairingRestoresState(t *testing.T) {
	h, db := newTestHandler(t)
	p := seedPost(t, db, 1)
	viewer := models.Viewer{Authenticated: true, AccountID: 1, FirstName: "Ada", LastName: "Byron"}
	r := routerAs(h, viewer)

	code, first := doReact(t, r, p.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, first.Success)
	assert.True(t, first.Reacted)
	assert.Equal(t, 1, first.ReactionCount)

	code, second := doReact(t, r, p.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, second.Success)
	assert.False(t, second.Reacted)
	assert.Equal(t, first.ReactionCount-1, second.ReactionCount)

	// The pair is idempotent: a third tap behaves like the first.
	code, third := doReact(t, r, p.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, third.Reacted)
	assert.Equal(t, 1, third.ReactionCount)
}

func TestReact_CountsOtherViewers(t *testing.T) {
	h, db := newTestHandler(t)
	p := seedPost(t, db, 1)
	require.NoError(t, db.Create(&models.Reaction{PostID: p.ID, AccountID: 2}).Error)

	r := routerAs(h, models.Viewer{Authenticated: true, AccountID: 1})
	_, resp := doReact(t, r, p.ID)
	assert.True(t, resp.Reacted)
	assert.Equal(t, 2, resp.ReactionCount)
}

func TestReact_RequiresViewer(t *testing.T) {
	h, db := newTestHandler(t)
	seedPost(t, db, 1)

	r := routerAs(h, models.Viewer{})
	code, resp := doReact(t, r, 1)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestReact_UnknownPostIs404(t *testing.T) {
	h, _ := newTestHandler(t)
	r := routerAs(h, models.Viewer{Authenticated: true, AccountID: 1})
	code, resp := doReact(t, r, 1)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
}

func TestDelete_RequiresViewer(t *testing.T) {
	h, db := newTestHandler(t)
	p := seedPost(t, db, 1)

	r := routerAs(h, models.Viewer{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/post/%d/delete", p.ID), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body reactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)

	var posts int64
	db.Model(&models.Post{}).Count(&posts)
	assert.EqualValues(t, 1, posts)
}

func TestDelete_AuthorOnly(t *testing.T) {
	h, db := newTestHandler(t)
	p := seedPost(t, db, 1)
	require.NoError(t, db.Create(&models.Comment{PostID: p.ID, AccountID: 2, Content: "hi", Timestamp: p.Timestamp}).Error)

	// Another account cannot delete.
	r := routerAs(h, models.Viewer{Authenticated: true, AccountID: 2})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/post/1/delete", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The author can, and the children go with it.
	r = routerAs(h, models.Viewer{Authenticated: true, AccountID: 1})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/post/1/delete", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var posts, comments int64
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
}
