package post

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/validators"
	"github.com/RXAliman/scrunch/internal/view"
	"github.com/RXAliman/scrunch/internal/weberr"
)

// EditForm renders the edit form. Only the author may see it.
func (h *PostHandler) EditForm(c *gin.Context) {
	viewer := utils.GetViewer(c)

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
	if p.AccountID != viewer.AccountID {
		h.renderError(c, weberr.E(weberr.Forbidden, "only the author can edit this post", nil))
		return
	}

	c.HTML(http.StatusOK, "edit.html", gin.H{
		"Title":  view.PageTitle("Edit Post"),
		"Viewer": viewer,
		"Post":   p,
	})
}

// Edit merge-updates the caption, optionally replaces the image, and
// stamps EditedOn. Write failures are logged and the viewer is sent
// back to the post either way.
func (h *PostHandler) Edit(c *gin.Context) {
	viewer := utils.GetViewer(c)

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
	if p.AccountID != viewer.AccountID {
		h.renderError(c, weberr.E(weberr.Forbidden, "only the author can edit this post", nil))
		return
	}

	var req validators.EditPostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "edit.html", gin.H{
			"Title":  view.PageTitle("Edit Post"),
			"Viewer": viewer,
			"Post":   p,
			"Error":  "a caption is required",
		})
		return
	}

	update := map[string]interface{}{
		"caption":   req.Caption,
		"edited_on": time.Now().UnixMilli(),
	}

	// A replacement image is optional on edit.
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		contentType := header.Header.Get("Content-Type")
		if h.svc.Images != nil && header.Size <= maxImageSize && allowedImages[contentType] {
			ext := filepath.Ext(header.Filename)
			if ext == "" {
				ext = ".jpg"
			}
			objectName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
			if imageURL, err := h.svc.Images.UploadImage(c, objectName, header.Size, file, contentType); err == nil {
				update["image_url"] = imageURL
			} else {
				zap.L().Error("replacement image upload failed", zap.Error(err), zap.Uint("post_id", id))
			}
		}
	}

	if err := h.svc.DB.Model(&p).Updates(update).Error; err != nil {
		zap.L().Error("edit post db error", zap.Error(err), zap.Uint("post_id", id))
	}
	h.evictPost(c, id)

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
}
