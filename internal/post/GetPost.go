package post

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RXAliman/scrunch/internal/feed"
	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/view"
	"github.com/RXAliman/scrunch/internal/weberr"
)

// GetPost renders the post detail page: the post itself plus its
// comments in conversation order.
func (h *PostHandler) GetPost(c *gin.Context) {
	viewer := utils.GetViewer(c)
	now := time.Now().UnixMilli()

	id, err := parsePostID(c)
	if err != nil {
		h.renderError(c, err)
		return
	}

	p, err := h.loadPost(c, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	items, err := feed.Assemble([]models.Post{p}, viewer.AccountID, now, h.nameLookup())
	if err != nil {
		zap.L().Error("failed to assemble post", zap.Error(err))
		h.renderError(c, err)
		return
	}

	comments, err := feed.AssembleComments(p.Comments, now, h.nameLookup())
	if err != nil {
		zap.L().Error("failed to assemble comments", zap.Error(err))
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"Title":    view.PostTitle(p.Caption),
		"Viewer":   viewer,
		"Post":     items[0],
		"Comments": comments,
		"IsOwner":  viewer.Authenticated && viewer.AccountID == p.AccountID,
	})
}

func parsePostID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, weberr.E(weberr.NotFound, "post not found", err)
	}
	return uint(id), nil
}
