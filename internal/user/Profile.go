package user

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RXAliman/scrunch/internal/feed"
	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/view"
)

// ProfilePage shows one account's posts, newest first. The author's
// name is known from the profile row, so assembly issues no lookups.
func (h *UserHandler) ProfilePage(c *gin.Context) {
	viewer := utils.GetViewer(c)
	now := time.Now().UnixMilli()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.renderNotFound(c)
		return
	}

	var profile models.Profile
	if err := h.svc.DB.First(&profile, uint(id)).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("failed to load profile", zap.Error(err))
		}
		h.renderNotFound(c)
		return
	}

	var posts []models.Post
	err = h.svc.DB.Preload("Comments").Preload("Reactions").
		Where("account_id = ?", profile.ID).
		Order("timestamp DESC").
		Find(&posts).Error
	if err != nil {
		zap.L().Error("failed to load profile posts", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Title":   view.PageTitle("Error"),
			"Viewer":  viewer,
			"Message": "could not load this profile",
		})
		return
	}

	items := feed.AssembleByAuthor(posts, profile, viewer.AccountID, now)

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Title":   view.PageTitle(profile.Name()),
		"Viewer":  viewer,
		"Profile": profile,
		"Posts":   items,
		"IsOwner": viewer.Authenticated && viewer.AccountID == profile.ID,
	})
}

func (h *UserHandler) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"Title":  view.PageTitle("Not Found"),
		"Viewer": utils.GetViewer(c),
	})
}
