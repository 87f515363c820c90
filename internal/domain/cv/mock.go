package cv

import (
	"context"

	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
)

// MockDocument returns the fixed sample CV every preview renders unless the
// service is configured to use the live portfolio.
func MockDocument() *Document {
	return &Document{
		Contact: Contact{
			FirstName: "Amal",
			LastName:  "Perera",
			Email:     "amal.perera@example.com",
			Phone:     "+94 77 123 4567",
			Location:  "Colombo, Sri Lanka",
			Summary:   "Dedicated software developer with expertise in web development. Strong problem-solving skills and a passion for creating efficient, user-friendly applications.",
			Photo:     "https://randomuser.me/api/portraits/men/35.jpg",
		},
		Headline: DefaultHeadline,
		Educations: []education.Education{{
			Institution:  "University of Colombo",
			Degree:       "Bachelor of Science",
			FieldOfStudy: "Computer Science",
			StartDate:    "2018-09-01",
			EndDate:      "2022-06-30",
		}},
		Experiences: []experience.Experience{{
			Company:     "Tech Innovators Lanka",
			Position:    "Junior Software Developer",
			Location:    "Colombo, Sri Lanka",
			StartDate:   "2022-07-15",
			Current:     true,
			Description: "Developing full-stack web applications using modern technologies.",
		}},
		Skills: []experience.Skill{
			{Name: "JavaScript", Proficiency: experience.Advanced},
			{Name: "React", Proficiency: experience.Intermediate},
			{Name: "Node.js", Proficiency: experience.Intermediate},
		},
		Languages: []experience.Language{
			{Name: "English", Proficiency: experience.Advanced},
			{Name: "Sinhala", Proficiency: experience.Native},
		},
	}
}

type MockSource struct{}

func (MockSource) Document(ctx context.Context) (*Document, error) {
	return MockDocument(), nil
}
