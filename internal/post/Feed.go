package post

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RXAliman/scrunch/internal/feed"
	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/mq"
	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/view"
	"github.com/RXAliman/scrunch/internal/weberr"
)

// Home renders the global feed, most recent post first.
func (h *PostHandler) Home(c *gin.Context) {
	viewer := utils.GetViewer(c)
	now := time.Now().UnixMilli()

	posts, err := h.recentPosts(c)
	if err != nil {
		zap.L().Error("failed to load feed", zap.Error(err))
		h.renderError(c, err)
		return
	}

	items, err := feed.Assemble(posts, viewer.AccountID, now, h.nameLookup())
	if err != nil {
		zap.L().Error("failed to assemble feed", zap.Error(err))
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":  view.PageTitle(""),
		"Viewer": viewer,
		"Posts":  items,
	})
}

// recentPosts loads feed candidates. The Redis sorted set, when warm,
// bounds the query to the newest posts; it is only a hint and the
// assembler re-sorts whatever comes back. A cold or missing hint falls
// back to the full table. Writers drop the hint whenever they cannot
// enqueue an update, so a warm hint never hides a post.
func (h *PostHandler) recentPosts(c *gin.Context) ([]models.Post, error) {
	var posts []models.Post

	if h.svc.Cache != nil {
		members, err := h.svc.Cache.ZRevRange(c, mq.RecentFeedKey, 0, -1)
		if err == nil && len(members) > 0 {
			ids := make([]uint, 0, len(members))
			for _, m := range members {
				if id, err := strconv.ParseUint(m, 10, 32); err == nil {
					ids = append(ids, uint(id))
				}
			}
			err = h.svc.DB.Preload("Comments").Preload("Reactions").
				Where("id IN ?", ids).
				Order("timestamp DESC").
				Find(&posts).Error
			if err == nil && len(posts) > 0 {
				return posts, nil
			}
		}
	}

	err := h.svc.DB.Preload("Comments").Preload("Reactions").
		Order("timestamp DESC").
		Find(&posts).Error
	if err != nil {
		return nil, weberr.E(weberr.Backend, "failed to load posts", err)
	}
	return posts, nil
}

// renderError maps a typed error onto the right page. Not-found falls
// through to the 404 page like an unmatched route.
func (h *PostHandler) renderError(c *gin.Context, err error) {
	status := weberr.HTTPStatus(err)
	if status == http.StatusNotFound {
		c.HTML(http.StatusNotFound, "404.html", gin.H{
			"Title":  view.PageTitle("Not Found"),
			"Viewer": utils.GetViewer(c),
		})
		return
	}
	c.HTML(status, "error.html", gin.H{
		"Title":   view.PageTitle("Error"),
		"Viewer":  utils.GetViewer(c),
		"Message": weberr.Message(err),
	})
}
