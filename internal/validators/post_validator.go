package validators

type CreatePostRequest struct {
	Caption string `form:"caption" binding:"required,max=2000"`
}

type EditPostRequest struct {
	Caption string `form:"caption" binding:"required,max=2000"`
}

type CommentRequest struct {
	Content string `form:"content" binding:"required,max=1000"`
}
