package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	cvUC "github.com/careerone/portfolio/internal/application/usecase/cv"
	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

type CVHandler struct {
	cvUseCase *cvUC.CVUseCase
	logger    logger.Logger
}

func NewCVHandler(uc *cvUC.CVUseCase, log logger.Logger) *CVHandler {
	return &CVHandler{cvUseCase: uc, logger: log}
}

func (h *CVHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.cvUseCase.ExecuteGetSettings())
}

func (h *CVHandler) UpdateSettings(c *gin.Context) {
	var patch cv.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for cv settings", err))
		return
	}

	settings, err := h.cvUseCase.ExecuteUpdateSettings(patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *CVHandler) RequestPreview(c *gin.Context) {
	c.JSON(http.StatusAccepted, ToPreviewStatusDTO(h.cvUseCase.ExecuteRequestPreview()))
}

func (h *CVHandler) PreviewStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ToPreviewStatusDTO(h.cvUseCase.ExecutePreviewStatus()))
}

func (h *CVHandler) ResetPreview(c *gin.Context) {
	c.JSON(http.StatusOK, ToPreviewStatusDTO(h.cvUseCase.ExecuteResetPreview()))
}

func (h *CVHandler) PreviewHTML(c *gin.Context) {
	html, err := h.cvUseCase.ExecuteRenderPreview(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *CVHandler) Download(c *gin.Context) {
	out, err := h.cvUseCase.ExecuteDownload(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	if out.ArchiveURL != "" {
		c.Header("X-Archive-URL", out.ArchiveURL)
	}
	c.Data(http.StatusOK, "application/pdf", out.PDF)
}
