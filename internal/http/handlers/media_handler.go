package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/remixgames/backend/internal/dto"
	"github.com/remixgames/backend/internal/http/handlers/common"
	"github.com/remixgames/backend/internal/models"
	"github.com/remixgames/backend/internal/repository"
	"github.com/remixgames/backend/internal/service"
	"github.com/remixgames/backend/internal/storage"
)

// Разрешённые расширения файлов. Тип содержимого дополнительно
// проверяется по магическим байтам в хранилище.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler управляет загрузкой изображений ремиксов.
type MediaHandler struct {
	repo    *repository.MediaRepository
	storage *storage.MediaStorage
	remixes *service.RemixService
}

func NewMediaHandler(repo *repository.MediaRepository, mediaStorage *storage.MediaStorage, remixes *service.RemixService) *MediaHandler {
	return &MediaHandler{repo: repo, storage: mediaStorage, remixes: remixes}
}

// Upload POST /media
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "файл не найден в запросе")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		common.RespondBadRequest(c, "недопустимое расширение файла")
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondBadRequest(c, "не удалось открыть файл")
		return
	}
	defer src.Close()

	saved, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	media := &models.Media{
		OwnerID:  userID,
		FilePath: saved.RelativePath,
		FileSize: saved.Size,
		MimeType: saved.MimeType,
	}
	if err := h.repo.Create(c.Request.Context(), media); err != nil {
		_ = h.storage.Delete(c.Request.Context(), saved.RelativePath)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// AttachToRemix POST /media/:id/attach/:remixId
func (h *MediaHandler) AttachToRemix(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	mediaID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	remixID, err := common.ParseUUIDParam(c, "remixId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.repo.AttachToRemix(c.Request.Context(), mediaID, remixID, userID); err != nil {
		c.Error(err)
		return
	}

	// Новое изображение проходит визуальную проверку: спам в картинке
	// не должен появляться на уже опубликованном ремиксе.
	role, _ := common.CurrentUserRole(c)
	verdict, err := h.remixes.ModerateAttachedImages(c.Request.Context(), role, remixID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "файл привязан к ремиксу",
		"moderation": dto.NewModerationVerdict(verdict),
	})
}

// Delete DELETE /media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	mediaID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	media, err := h.repo.GetByID(c.Request.Context(), mediaID)
	if err != nil {
		c.Error(err)
		return
	}
	if media.OwnerID != userID {
		common.RespondError(c, http.StatusForbidden, "удалить файл может только владелец")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), mediaID, userID); err != nil {
		c.Error(err)
		return
	}
	if err := h.storage.Delete(c.Request.Context(), media.FilePath); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "файл удалён"})
}
