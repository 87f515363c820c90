package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/careerone/portfolio/internal/application/usecase/media"
	profileUC "github.com/careerone/portfolio/internal/application/usecase/profile"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	uploadUseCase  *mediaUC.UploadMediaUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, upload *mediaUC.UploadMediaUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		uploadUseCase:  upload,
		logger:         log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		DOB:          req.DOB,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Summary:      req.Summary,
		ProfileImage: req.ProfileImage,
	}
	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// UploadPhoto stores the multipart "file" and makes it the profile image.
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	upload, ok := receiveFile(c, h.uploadUseCase, mediaUC.PurposeProfilePhoto)
	if !ok {
		return
	}

	output, err := h.profileUseCase.ExecuteSetPhoto(c.Request.Context(), upload.URL)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}
