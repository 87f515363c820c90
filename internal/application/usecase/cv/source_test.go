package cv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
	"github.com/careerone/portfolio/internal/domain/profile"
)

type listRepo[T interface{ Identity() string }] struct {
	items []T
}

func (r *listRepo[T]) List(context.Context) ([]T, error) { return r.items, nil }
func (r *listRepo[T]) Append(_ context.Context, rec T) error {
	r.items = append(r.items, rec)
	return nil
}
func (r *listRepo[T]) Delete(context.Context, string) error { return nil }
func (r *listRepo[T]) Replace(_ context.Context, recs []T) error {
	r.items = recs
	return nil
}

type staticProfile struct{ p profile.Profile }

func (s *staticProfile) Get(context.Context) (*profile.Profile, error) {
	p := s.p
	return &p, nil
}

func (s *staticProfile) Upsert(_ context.Context, p *profile.Profile) error {
	s.p = *p
	return nil
}

func TestPortfolioSourceBuildsDocumentFromStores(t *testing.T) {
	photo := "data:image/png;base64,AAAA"
	src := &PortfolioSource{
		Profile: &staticProfile{p: profile.Profile{
			FirstName:    "Nimali",
			LastName:     "Silva",
			Email:        "nimali@example.com",
			City:         "Kandy",
			Province:     "Central",
			ProfileImage: &photo,
		}},
		Educations:  &listRepo[education.Education]{items: []education.Education{{ID: "e1", Institution: "University of Peradeniya"}}},
		Experiences: &listRepo[experience.Experience]{},
		Skills:      &listRepo[experience.Skill]{items: []experience.Skill{{ID: "s1", Name: "Go"}}},
		Languages:   &listRepo[experience.Language]{},
	}

	doc, err := src.Document(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Nimali", doc.Contact.FirstName)
	assert.Equal(t, "Kandy, Central", doc.Contact.Location)
	assert.Equal(t, photo, doc.Contact.Photo)
	assert.Equal(t, "Software Developer", doc.Headline)
	require.Len(t, doc.Educations, 1)
	assert.Equal(t, "University of Peradeniya", doc.Educations[0].Institution)
	require.Len(t, doc.Skills, 1)
	assert.Empty(t, doc.Experiences)
}

func TestPortfolioSourceFallsBackToAddress(t *testing.T) {
	src := &PortfolioSource{
		Profile:     &staticProfile{p: profile.Profile{Address: "12 Temple Road"}},
		Educations:  &listRepo[education.Education]{},
		Experiences: &listRepo[experience.Experience]{},
		Skills:      &listRepo[experience.Skill]{},
		Languages:   &listRepo[experience.Language]{},
	}
	doc, err := src.Document(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12 Temple Road", doc.Contact.Location)
	assert.Empty(t, doc.Contact.Photo)
}
