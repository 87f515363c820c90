package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/internal/domain/profile"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
	"go.uber.org/zap"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.ActivityPublisher
	logger      logger.Logger

	// serializes read-modify-write of the singleton profile
	mu sync.Mutex
}

func NewProfileUseCase(repo profile.Repository, pub service.ActivityPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		publisher:   pub,
		logger:      log,
	}
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	DOB        string
	Address    string
	City       string
	Province   string
	PostalCode string
	Summary    string
	// nil keeps the stored image
	ProfileImage *string
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile failed: %w", err)
	}

	p := &profile.Profile{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		DOB:          input.DOB,
		Address:      input.Address,
		City:         input.City,
		Province:     input.Province,
		PostalCode:   input.PostalCode,
		Summary:      input.Summary,
		ProfileImage: current.ProfileImage,
		UpdatedAt:    time.Now().UTC(),
	}
	if input.ProfileImage != nil {
		p.ProfileImage = input.ProfileImage
	}
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("profile validation failed", err)
	}

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile failed: %w", err)
	}

	uc.record(ctx, activity.VerbUpdated, "Your profile information was updated")
	return &UpdateProfileOutput{Profile: p}, nil
}

// ExecuteSetPhoto replaces the profile image only. It works on a profile
// that has not been filled in yet.
func (uc *ProfileUseCase) ExecuteSetPhoto(ctx context.Context, imageURL string) (*UpdateProfileOutput, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	p, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile failed: %w", err)
	}
	p.ProfileImage = &imageURL
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile photo failed: %w", err)
	}
	return &UpdateProfileOutput{Profile: p}, nil
}

// Replace stores p as is. A profile that was never filled in is accepted
// blank; anything else must validate.
func (uc *ProfileUseCase) Replace(ctx context.Context, p *profile.Profile) error {
	if err := p.Validate(); err != nil && !p.IsBlank() {
		return apperror.NewInvalidInput("profile validation failed", err)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.profileRepo.Upsert(ctx, p)
}

func (uc *ProfileUseCase) record(ctx context.Context, verb, description string) {
	if uc.publisher == nil {
		return
	}
	a := activity.New(profile.Kind, verb, activity.Title(profile.Kind, verb), description)
	if err := uc.publisher.Publish(ctx, a); err != nil {
		uc.logger.Error("Failed to publish activity", err, zap.String("kind", a.Kind))
	}
}
