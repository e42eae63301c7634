package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remixgames/backend/internal/dto"
	"github.com/remixgames/backend/internal/http/handlers/common"
	"github.com/remixgames/backend/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
	users    *service.AuthService
}

func NewCommentHandler(comments *service.CommentService, users *service.AuthService) *CommentHandler {
	return &CommentHandler{comments: comments, users: users}
}

// Submit POST /remixes/:id/comments
func (h *CommentHandler) Submit(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	author, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	remixID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	result, err := h.comments.Submit(c.Request.Context(), author, remixID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitCommentResponse{
		Comment:    result.Comment,
		Moderation: dto.NewModerationVerdict(result.Moderation),
	})
}

// List GET /remixes/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	remixID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	comments, err := h.comments.ListByRemix(c.Request.Context(), remixID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Delete DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	commentID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.comments.Delete(c.Request.Context(), user, commentID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "комментарий удалён"})
}
