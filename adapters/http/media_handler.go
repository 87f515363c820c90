package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/careerone/portfolio/internal/application/usecase/media"
	panelUC "github.com/careerone/portfolio/internal/application/usecase/panel"
	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

// CertificateFileHandler attaches an uploaded file to the certification
// draft.
type CertificateFileHandler struct {
	uploadUseCase  *mediaUC.UploadMediaUseCase
	certifications *panelUC.PanelUseCase[education.Certification]
	logger         logger.Logger
}

func NewCertificateFileHandler(
	upload *mediaUC.UploadMediaUseCase,
	certifications *panelUC.PanelUseCase[education.Certification],
	log logger.Logger,
) *CertificateFileHandler {
	return &CertificateFileHandler{
		uploadUseCase:  upload,
		certifications: certifications,
		logger:         log,
	}
}

func (h *CertificateFileHandler) UploadDraftFile(c *gin.Context) {
	upload, ok := receiveFile(c, h.uploadUseCase, mediaUC.PurposeCertificate)
	if !ok {
		return
	}

	patch, err := json.Marshal(map[string]string{"certificateFile": upload.URL})
	if err != nil {
		c.Error(apperror.NewInternal("failed to build draft patch", err))
		return
	}
	draft, err := h.certifications.UpdateDraft(patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// receiveFile reads the multipart "file" field and stores it. On failure
// the error is already pushed to c.
func receiveFile(c *gin.Context, uc *mediaUC.UploadMediaUseCase, purpose mediaUC.Purpose) (*mediaUC.UploadMediaOutput, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return nil, false
	}
	if fileHeader.Size > mediaUC.MaxUploadSize {
		c.Error(apperror.NewInvalidInput("uploaded file is larger than 5MB", nil))
		return nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return nil, false
	}
	defer file.Close()

	out, err := uc.Execute(c.Request.Context(), mediaUC.UploadMediaInput{
		File:     file,
		Filename: fileHeader.Filename,
		Purpose:  purpose,
	})
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return out, true
}

// UploadHandler stores a file without attaching it anywhere, for clients
// that manage the URL themselves.
type UploadHandler struct {
	uploadUseCase *mediaUC.UploadMediaUseCase
}

func NewUploadHandler(uc *mediaUC.UploadMediaUseCase) *UploadHandler {
	return &UploadHandler{uploadUseCase: uc}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	purpose := mediaUC.Purpose(c.DefaultPostForm("purpose", string(mediaUC.PurposeProfilePhoto)))
	if purpose != mediaUC.PurposeProfilePhoto && purpose != mediaUC.PurposeCertificate {
		c.Error(apperror.NewInvalidInput("purpose must be photo or certificate", nil))
		return
	}
	upload, ok := receiveFile(c, h.uploadUseCase, purpose)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, ToUploadDTO(upload))
}
