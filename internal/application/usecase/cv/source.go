package cv

import (
	"context"
	"fmt"

	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
	"github.com/careerone/portfolio/internal/domain/profile"
)

// PortfolioSource builds the CV from the stored portfolio instead of the
// sample data.
type PortfolioSource struct {
	Profile     profile.Repository
	Educations  education.Repository
	Experiences experience.Repository
	Skills      experience.SkillRepository
	Languages   experience.LanguageRepository
}

func (s *PortfolioSource) Document(ctx context.Context) (*cv.Document, error) {
	p, err := s.Profile.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	doc := &cv.Document{
		Contact: cv.Contact{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Phone:     p.Phone,
			Location:  p.Location(),
			Summary:   p.Summary,
		},
		Headline: cv.DefaultHeadline,
	}
	if doc.Contact.Location == "" {
		doc.Contact.Location = p.Address
	}
	if p.ProfileImage != nil {
		doc.Contact.Photo = *p.ProfileImage
	}

	if doc.Educations, err = s.Educations.List(ctx); err != nil {
		return nil, fmt.Errorf("load educations: %w", err)
	}
	if doc.Experiences, err = s.Experiences.List(ctx); err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	if doc.Skills, err = s.Skills.List(ctx); err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	if doc.Languages, err = s.Languages.List(ctx); err != nil {
		return nil, fmt.Errorf("load languages: %w", err)
	}
	return doc, nil
}
