package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remixgames/backend/internal/dto"
	"github.com/remixgames/backend/internal/http/handlers/common"
	"github.com/remixgames/backend/internal/service"
	"github.com/remixgames/backend/internal/validation"
)

// ModerationHandler — панель модератора: очередь, счётчики, вердикты.
// Все ручки закрыты middleware RequireModerator.
type ModerationHandler struct {
	svc *service.ModerationService
}

func NewModerationHandler(s *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{svc: s}
}

// ListQueue GET /moderation/queue?status=&limit=&offset=
func (h *ModerationHandler) ListQueue(c *gin.Context) {
	limit, offset := common.GetPagination(c)
	items, err := h.svc.ListQueue(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

// Counts GET /moderation/queue/counts
func (h *ModerationHandler) Counts(c *gin.Context) {
	counts, err := h.svc.QueueCounts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// GetItem GET /moderation/queue/:id
func (h *ModerationHandler) GetItem(c *gin.Context) {
	itemID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.svc.GetQueueItem(c.Request.Context(), itemID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// UserFlags GET /moderation/users/:id/flags
func (h *ModerationHandler) UserFlags(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	flags, err := h.svc.UserFlags(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flags": flags})
}

// Decide POST /moderation/queue/:id/decision
func (h *ModerationHandler) Decide(c *gin.Context) {
	moderatorID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	itemID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ModerateQueueItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}
	if req.Notes != nil {
		if err := validation.ValidateModeratorNotes(*req.Notes); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}

	item, err := h.svc.ProcessQueueItem(c.Request.Context(), itemID, moderatorID, req.Action, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, item)
}
