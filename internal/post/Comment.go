package post

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/validators"
)

// Comment appends one comment to a post with a server-assigned
// timestamp and sends the viewer back to the post page. A failed write
// is logged but the redirect still happens; the page simply shows the
// conversation without the lost comment.
func (h *PostHandler) Comment(c *gin.Context) {
	viewer := utils.GetViewer(c)

	id, err := parsePostID(c)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var req validators.CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
		return
	}

	if _, err := h.loadPost(c, id); err != nil {
		h.renderError(c, err)
		return
	}

	comment := models.Comment{
		PostID:    id,
		AccountID: viewer.AccountID,
		Content:   req.Content,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := h.svc.DB.Create(&comment).Error; err != nil {
		zap.L().Error("create comment db error", zap.Error(err), zap.Uint("post_id", id))
	}
	h.evictPost(c, id)

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
}
