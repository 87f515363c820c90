package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/careerone/portfolio/internal/application/usecase/portfolio"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

type PortfolioHandler struct {
	snapshotUseCase *portfolioUC.SnapshotUseCase
	logger          logger.Logger
}

func NewPortfolioHandler(uc *portfolioUC.SnapshotUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{snapshotUseCase: uc, logger: log}
}

func (h *PortfolioHandler) Export(c *gin.Context) {
	snap, err := h.snapshotUseCase.ExecuteExport(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *PortfolioHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read request body", err))
		return
	}

	snap, err := h.snapshotUseCase.ExecuteImport(c.Request.Context(), body)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
