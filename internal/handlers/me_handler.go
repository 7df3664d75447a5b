package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/dto"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/campus-scheduler/internal/media"
	ucAuth "github.com/BruksfildServices01/campus-scheduler/internal/usecase/auth"
)

type MeHandler struct {
	getMe        *ucAuth.GetMe
	uploadAvatar *ucAuth.UploadAvatar
	avatarURL    func(string) string
	logger       *zap.Logger
}

func NewMeHandler(
	getMe *ucAuth.GetMe,
	uploadAvatar *ucAuth.UploadAvatar,
	avatarURL func(string) string,
	logger *zap.Logger,
) *MeHandler {
	return &MeHandler{
		getMe:        getMe,
		uploadAvatar: uploadAvatar,
		avatarURL:    avatarURL,
		logger:       logger,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	u, err := h.getMe.Execute(c.Request.Context(), caller)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.NewUserDTO(u, h.avatarURL))
}

// UploadAvatar expects a multipart form with the image in "file".
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "Attach the image as \"file\".")
		return
	}
	if fh.Size > media.MaxAvatarBytes {
		httperr.BadRequest(c, "avatar_too_large", "Avatar images must be under 5 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, media.MaxAvatarBytes+1))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	url, err := h.uploadAvatar.Execute(c.Request.Context(), caller, data)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}
