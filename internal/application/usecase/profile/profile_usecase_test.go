package profile_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerone/portfolio/adapters/persistence"
	profileUC "github.com/careerone/portfolio/internal/application/usecase/profile"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/internal/domain/profile"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

type capturePublisher struct {
	events []activity.Activity
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, a activity.Activity) error {
	p.events = append(p.events, a)
	return p.err
}

// pausingRepo holds the first Get until release is closed.
type pausingRepo struct {
	profile.Repository
	once    sync.Once
	paused  chan struct{}
	release chan struct{}
}

func (r *pausingRepo) Get(ctx context.Context) (*profile.Profile, error) {
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.paused)
		<-r.release
	}
	return r.Repository.Get(ctx)
}

func validInput() profileUC.UpdateProfileInput {
	return profileUC.UpdateProfileInput{
		FirstName: "Nimal",
		LastName:  "Perera",
		Email:     "nimal@example.com",
		City:      "Colombo",
		Province:  "Western",
	}
}

func TestGetProfileBeforeFirstSaveIsBlank(t *testing.T) {
	uc := profileUC.NewProfileUseCase(persistence.NewMemoryProfileRepo(), nil, logger.NewNopLogger())

	out, err := uc.ExecuteGetProfile(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Profile.IsBlank())
	assert.Nil(t, out.Profile.ProfileImage)
}

func TestUpdateProfileStoresAndPublishes(t *testing.T) {
	pub := &capturePublisher{}
	uc := profileUC.NewProfileUseCase(persistence.NewMemoryProfileRepo(), pub, logger.NewNopLogger())
	ctx := context.Background()

	out, err := uc.ExecuteUpdateProfile(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "Nimal Perera", out.Profile.FullName())
	assert.False(t, out.Profile.UpdatedAt.IsZero())

	got, err := uc.ExecuteGetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Colombo, Western", got.Profile.Location())

	require.Len(t, pub.events, 1)
	assert.Equal(t, "profile.updated", pub.events[0].Kind)
	assert.Equal(t, "Your profile information was updated", pub.events[0].Description)
}

func TestUpdateProfileRequiresNameAndEmail(t *testing.T) {
	pub := &capturePublisher{}
	uc := profileUC.NewProfileUseCase(persistence.NewMemoryProfileRepo(), pub, logger.NewNopLogger())

	input := validInput()
	input.Email = "  "
	_, err := uc.ExecuteUpdateProfile(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Contains(t, err.Error(), "email")
	assert.Empty(t, pub.events)

	got, err := uc.ExecuteGetProfile(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Profile.IsBlank())
}

func TestUpdateProfileKeepsImageUnlessGiven(t *testing.T) {
	uc := profileUC.NewProfileUseCase(persistence.NewMemoryProfileRepo(), nil, logger.NewNopLogger())
	ctx := context.Background()

	_, err := uc.ExecuteSetPhoto(ctx, "https://img.example.com/me.png")
	require.NoError(t, err)

	out, err := uc.ExecuteUpdateProfile(ctx, validInput())
	require.NoError(t, err)
	require.NotNil(t, out.Profile.ProfileImage)
	assert.Equal(t, "https://img.example.com/me.png", *out.Profile.ProfileImage)

	input := validInput()
	replacement := "https://img.example.com/new.png"
	input.ProfileImage = &replacement
	out, err = uc.ExecuteUpdateProfile(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, replacement, *out.Profile.ProfileImage)
}

func TestSetPhotoOnBlankProfile(t *testing.T) {
	uc := profileUC.NewProfileUseCase(persistence.NewMemoryProfileRepo(), nil, logger.NewNopLogger())
	ctx := context.Background()

	out, err := uc.ExecuteSetPhoto(ctx, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.True(t, out.Profile.IsBlank())

	got, err := uc.ExecuteGetProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got.Profile.ProfileImage)
	assert.Equal(t, "data:image/png;base64,AAAA", *got.Profile.ProfileImage)
}

func TestPublishFailureDoesNotFailUpdate(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	uc := profileUC.NewProfileUseCase(persistence.NewMemoryProfileRepo(), pub, logger.NewNopLogger())

	_, err := uc.ExecuteUpdateProfile(context.Background(), validInput())
	require.NoError(t, err)
	assert.Len(t, pub.events, 1)
}

func TestReplace(t *testing.T) {
	uc := profileUC.NewProfileUseCase(persistence.NewMemoryProfileRepo(), nil, logger.NewNopLogger())
	ctx := context.Background()

	t.Run("blank profile is accepted", func(t *testing.T) {
		p := &profile.Profile{}
		require.NoError(t, uc.Replace(ctx, p))
		assert.False(t, p.UpdatedAt.IsZero())
	})

	t.Run("partially filled profile must validate", func(t *testing.T) {
		err := uc.Replace(ctx, &profile.Profile{FirstName: "Nimal"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	})

	t.Run("full profile is stored", func(t *testing.T) {
		require.NoError(t, uc.Replace(ctx, &profile.Profile{FirstName: "Nimal", LastName: "Perera", Email: "n@example.com"}))
		got, err := uc.ExecuteGetProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "n@example.com", got.Profile.Email)
	})
}

func TestConcurrentPhotoUploadIsNotLost(t *testing.T) {
	repo := &pausingRepo{
		Repository: persistence.NewMemoryProfileRepo(),
		paused:     make(chan struct{}),
		release:    make(chan struct{}),
	}
	uc := profileUC.NewProfileUseCase(repo, nil, logger.NewNopLogger())
	ctx := context.Background()

	updateDone := make(chan error, 1)
	go func() {
		_, err := uc.ExecuteUpdateProfile(ctx, validInput())
		updateDone <- err
	}()
	<-repo.paused

	photoDone := make(chan error, 1)
	go func() {
		_, err := uc.ExecuteSetPhoto(ctx, "data:image/png;base64,AAAA")
		photoDone <- err
	}()

	select {
	case <-photoDone:
		t.Fatal("photo upload finished while the update was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)
	require.NoError(t, <-updateDone)
	require.NoError(t, <-photoDone)

	got, err := uc.ExecuteGetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nimal Perera", got.Profile.FullName())
	require.NotNil(t, got.Profile.ProfileImage)
	assert.Equal(t, "data:image/png;base64,AAAA", *got.Profile.ProfileImage)
}
