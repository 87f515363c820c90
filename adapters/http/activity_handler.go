package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	activityUC "github.com/careerone/portfolio/internal/application/usecase/activity"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

type ActivityHandler struct {
	activityUseCase *activityUC.ActivityUseCase
	publicURL       string
	logger          logger.Logger
}

// NewActivityHandler takes the public base URL used for feed links. When it
// is empty the links are built from the request host.
func NewActivityHandler(uc *activityUC.ActivityUseCase, publicURL string, log logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUseCase: uc,
		publicURL:       strings.TrimRight(publicURL, "/"),
		logger:          log,
	}
}

func (h *ActivityHandler) ListRecent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("limit must be a number", err))
			return
		}
		limit = n
	}

	items, err := h.activityUseCase.ExecuteListRecent(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ActivityHandler) Feed(c *gin.Context) {
	feed, err := h.activityUseCase.ExecuteFeed(c.Request.Context(), h.baseURL(c))
	if err != nil {
		c.Error(apperror.NewInternal("failed to generate activity feed", err))
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")

	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}

func (h *ActivityHandler) baseURL(c *gin.Context) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch fwd := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); fwd {
	case "http", "https":
		scheme = fwd
	}
	return scheme + "://" + c.Request.Host
}
