package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
	"github.com/careerone/portfolio/pkg/logger"
)

// Handlers is everything the API router mounts.
type Handlers struct {
	Educations     *PanelHandler[education.Education]
	Certifications *PanelHandler[education.Certification]
	Courses        *PanelHandler[education.Course]
	Experiences    *PanelHandler[experience.Experience]
	Skills         *PanelHandler[experience.Skill]
	Languages      *PanelHandler[experience.Language]

	Profile         *ProfileHandler
	CertificateFile *CertificateFileHandler
	Upload          *UploadHandler
	CV              *CVHandler
	Activity        *ActivityHandler
	Portfolio       *PortfolioHandler
}

func NewRouter(h Handlers, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))
	router.MaxMultipartMemory = 8 << 20

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.GET("/profile", h.Profile.GetProfile)
		api.PUT("/profile", h.Profile.UpdateProfile)
		api.POST("/profile/photo", h.Profile.UploadPhoto)

		h.Educations.Register(api.Group("/educations"))
		certs := api.Group("/certifications")
		h.Certifications.Register(certs)
		certs.POST("/draft/file", h.CertificateFile.UploadDraftFile)
		h.Courses.Register(api.Group("/courses"))
		h.Experiences.Register(api.Group("/experiences"))
		h.Skills.Register(api.Group("/skills"))
		h.Languages.Register(api.Group("/languages"))

		api.POST("/uploads", h.Upload.Upload)

		cvGroup := api.Group("/cv")
		{
			cvGroup.GET("/settings", h.CV.GetSettings)
			cvGroup.PUT("/settings", h.CV.UpdateSettings)
			cvGroup.POST("/preview", h.CV.RequestPreview)
			cvGroup.GET("/preview", h.CV.PreviewStatus)
			cvGroup.DELETE("/preview", h.CV.ResetPreview)
			cvGroup.GET("/preview.html", h.CV.PreviewHTML)
			cvGroup.GET("/download", h.CV.Download)
		}

		api.GET("/activities", h.Activity.ListRecent)
		api.GET("/activities/feed.xml", h.Activity.Feed)

		api.GET("/portfolio", h.Portfolio.Export)
		api.POST("/portfolio/import", h.Portfolio.Import)
	}
	return router
}
