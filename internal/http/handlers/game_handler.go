package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remixgames/backend/internal/dto"
	"github.com/remixgames/backend/internal/http/handlers/common"
	"github.com/remixgames/backend/internal/service"
)

type GameHandler struct {
	svc *service.GameService
}

func NewGameHandler(s *service.GameService) *GameHandler {
	return &GameHandler{svc: s}
}

// Search GET /games/search?q=
func (h *GameHandler) Search(c *gin.Context) {
	query := c.Query("q")
	results, err := h.svc.Search(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Import POST /games/import
func (h *GameHandler) Import(c *gin.Context) {
	var req dto.ImportGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	game, err := h.svc.Import(c.Request.Context(), req.BGGID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

// Get GET /games/:id
func (h *GameHandler) Get(c *gin.Context) {
	gameID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	game, err := h.svc.GetByID(c.Request.Context(), gameID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, game)
}
