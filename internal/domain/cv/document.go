package cv

import (
	"context"

	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
)

const DefaultHeadline = "Software Developer"

type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Location  string
	Summary   string
	Photo     string
}

// Document is everything a CV layout reads besides the settings.
type Document struct {
	Contact     Contact
	Headline    string
	Educations  []education.Education
	Experiences []experience.Experience
	Skills      []experience.Skill
	Languages   []experience.Language
}

// DocumentSource supplies the data a preview is rendered from.
type DocumentSource interface {
	Document(ctx context.Context) (*Document, error)
}
