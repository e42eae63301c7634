package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/dto"
	"github.com/remixgames/backend/internal/http/handlers/common"
	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/repository"
	"github.com/remixgames/backend/internal/service"
)

type RemixHandler struct {
	remixes *service.RemixService
	games   *service.GameService
	users   *service.AuthService
}

func NewRemixHandler(remixes *service.RemixService, games *service.GameService, users *service.AuthService) *RemixHandler {
	return &RemixHandler{remixes: remixes, games: games, users: users}
}

// Submit POST /remixes
func (h *RemixHandler) Submit(c *gin.Context) {
	author, ok := h.currentUser(c)
	if !ok {
		return
	}

	in, ok := h.bindSubmitInput(c)
	if !ok {
		return
	}

	if err := h.games.ResolveIDs(c.Request.Context(), in.GameIDs); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.remixes.Submit(c.Request.Context(), author, in)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitRemixResponse{
		Remix:      result.Remix,
		Moderation: dto.NewModerationVerdict(result.Moderation),
	})
}

// Update PUT /remixes/:id
func (h *RemixHandler) Update(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	remixID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	in, ok := h.bindSubmitInput(c)
	if !ok {
		return
	}

	result, err := h.remixes.Update(c.Request.Context(), user, remixID, in)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitRemixResponse{
		Remix:      result.Remix,
		Moderation: dto.NewModerationVerdict(result.Moderation),
	})
}

// Get GET /remixes/:id
func (h *RemixHandler) Get(c *gin.Context) {
	remixID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var viewer *models.User
	if userID, err := common.CurrentUserID(c); err == nil {
		if user, err := h.users.GetUser(c.Request.Context(), userID); err == nil {
			viewer = user
		}
	}

	remix, err := h.remixes.GetByID(c.Request.Context(), remixID, viewer)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, remix)
}

// List GET /remixes
func (h *RemixHandler) List(c *gin.Context) {
	sort := c.Query("sort")
	switch sort {
	case "", repository.SortNew, repository.SortTop, repository.SortHot:
	default:
		common.RespondBadRequest(c, "sort должен быть new, top или hot")
		return
	}

	limit, offset := common.GetPagination(c)
	filter := repository.RemixFilter{
		Search: c.Query("search"),
		Sort:   sort,
		Limit:  limit,
		Offset: offset,
	}
	if gameIDStr := c.Query("game_id"); gameIDStr != "" {
		gameID, err := uuid.Parse(gameIDStr)
		if err != nil {
			common.RespondBadRequest(c, "game_id должен быть валидным UUID")
			return
		}
		filter.GameID = &gameID
	}

	remixes, err := h.remixes.ListPublished(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"remixes": remixes, "limit": limit, "offset": offset})
}

// ListMine GET /remixes/mine
func (h *RemixHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit, offset := common.GetPagination(c)
	remixes, err := h.remixes.ListByAuthor(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"remixes": remixes})
}

// Delete DELETE /remixes/:id
func (h *RemixHandler) Delete(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	remixID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.remixes.Delete(c.Request.Context(), user, remixID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ремикс удалён"})
}

func (h *RemixHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return nil, false
	}
	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return user, true
}

func (h *RemixHandler) bindSubmitInput(c *gin.Context) (service.SubmitRemixInput, bool) {
	var req dto.SubmitRemixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return service.SubmitRemixInput{}, false
	}

	gameIDs := make([]uuid.UUID, 0, len(req.GameIDs))
	for _, raw := range req.GameIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			common.RespondBadRequest(c, "game_ids должны быть валидными UUID")
			return service.SubmitRemixInput{}, false
		}
		gameIDs = append(gameIDs, id)
	}

	return service.SubmitRemixInput{
		Title:       req.Title,
		Description: req.Description,
		Rules:       req.Rules,
		GameIDs:     gameIDs,
	}, true
}
