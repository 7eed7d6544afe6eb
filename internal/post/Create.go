package post

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/validators"
	"github.com/RXAliman/scrunch/internal/view"
)

var allowedImages = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

const maxImageSize = 5 * 1024 * 1024

// CreateForm renders the new-post form.
func (h *PostHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", gin.H{
		"Title":  view.PageTitle("New Post"),
		"Viewer": utils.GetViewer(c),
	})
}

// Create stores the uploaded image and writes the post record with a
// server-assigned timestamp.
func (h *PostHandler) Create(c *gin.Context) {
	viewer := utils.GetViewer(c)

	var req validators.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderCreateError(c, "a caption is required")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		h.renderCreateError(c, "an image is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		h.renderCreateError(c, "image must be 5MB or smaller")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedImages[contentType] {
		h.renderCreateError(c, "unsupported image format")
		return
	}

	if h.svc.Images == nil {
		h.renderCreateError(c, "image uploads are temporarily unavailable")
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	imageURL, err := h.svc.Images.UploadImage(c, objectName, header.Size, file, contentType)
	if err != nil {
		zap.L().Error("image upload failed", zap.Error(err))
		h.renderCreateError(c, "image upload failed, try again")
		return
	}

	p := models.Post{
		AccountID: viewer.AccountID,
		Caption:   req.Caption,
		ImageURL:  imageURL,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := h.svc.DB.Create(&p).Error; err != nil {
		zap.L().Error("create post db error", zap.Error(err))
		h.renderCreateError(c, "could not save your post")
		return
	}

	h.publishFeedMsg(models.FeedMsg{
		PostID:    p.ID,
		AccountID: p.AccountID,
		Timestamp: p.Timestamp,
		Action:    "add",
	})

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", p.ID))
}

func (h *PostHandler) renderCreateError(c *gin.Context, message string) {
	c.HTML(http.StatusUnprocessableEntity, "create.html", gin.H{
		"Title":  view.PageTitle("New Post"),
		"Viewer": utils.GetViewer(c),
		"Error":  message,
	})
}
