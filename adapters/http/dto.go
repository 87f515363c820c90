package http

import (
	"time"

	mediaUC "github.com/careerone/portfolio/internal/application/usecase/media"
	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/internal/domain/profile"
)

// Profile DTOs
type ProfileDTO struct {
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	DOB          string    `json:"dob"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	PostalCode   string    `json:"postalCode"`
	Summary      string    `json:"summary"`
	ProfileImage *string   `json:"profileImage"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	FirstName    string  `json:"firstName" binding:"required"`
	LastName     string  `json:"lastName" binding:"required"`
	Email        string  `json:"email" binding:"required"`
	Phone        string  `json:"phone"`
	DOB          string  `json:"dob"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	PostalCode   string  `json:"postalCode"`
	Summary      string  `json:"summary"`
	ProfileImage *string `json:"profileImage"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		DOB:          p.DOB,
		Address:      p.Address,
		City:         p.City,
		Province:     p.Province,
		PostalCode:   p.PostalCode,
		Summary:      p.Summary,
		ProfileImage: p.ProfileImage,
		UpdatedAt:    p.UpdatedAt,
	}
}

// Media DTOs
type UploadDTO struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
}

func ToUploadDTO(out *mediaUC.UploadMediaOutput) UploadDTO {
	return UploadDTO{URL: out.URL, MimeType: out.MimeType, Size: out.Size}
}

// CV DTOs
type PreviewStatusDTO struct {
	State       string     `json:"state"`
	Ready       bool       `json:"ready"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
	ReadyAt     *time.Time `json:"readyAt,omitempty"`
}

func ToPreviewStatusDTO(s cv.PreviewStatus) PreviewStatusDTO {
	return PreviewStatusDTO{
		State:       string(s.State),
		Ready:       s.IsReady(),
		RequestedAt: s.RequestedAt,
		ReadyAt:     s.ReadyAt,
	}
}
