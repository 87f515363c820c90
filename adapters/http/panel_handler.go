package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	panelUC "github.com/careerone/portfolio/internal/application/usecase/panel"
	"github.com/careerone/portfolio/internal/domain/panel"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

// PanelHandler serves one list panel and its draft form.
type PanelHandler[T panel.Record[T]] struct {
	useCase *panelUC.PanelUseCase[T]
	logger  logger.Logger
}

func NewPanelHandler[T panel.Record[T]](uc *panelUC.PanelUseCase[T], log logger.Logger) *PanelHandler[T] {
	return &PanelHandler[T]{useCase: uc, logger: log}
}

// Register mounts the panel routes on g, which is already scoped to the
// panel path.
func (h *PanelHandler[T]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Add)
	g.GET("/draft", h.GetDraft)
	g.PUT("/draft", h.UpdateDraft)
	g.DELETE("/draft", h.ResetDraft)
	g.POST("/draft/submit", h.SubmitDraft)
	g.DELETE("/:id", h.Delete)
}

func (h *PanelHandler[T]) List(c *gin.Context) {
	recs, err := h.useCase.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *PanelHandler[T]) Add(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for "+h.useCase.Kind(), err))
		return
	}

	stored, err := h.useCase.Add(c.Request.Context(), rec)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (h *PanelHandler[T]) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler[T]) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.useCase.Draft())
}

// UpdateDraft merges the body into the draft; fields it leaves out keep
// their value.
func (h *PanelHandler[T]) UpdateDraft(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read request body", err))
		return
	}

	draft, err := h.useCase.UpdateDraft(body)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *PanelHandler[T]) ResetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.useCase.ResetDraft())
}

func (h *PanelHandler[T]) SubmitDraft(c *gin.Context) {
	stored, err := h.useCase.SubmitDraft(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}
