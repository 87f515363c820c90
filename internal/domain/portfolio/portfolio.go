package portfolio

import (
	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
	"github.com/careerone/portfolio/internal/domain/profile"
)

// Snapshot is the whole portfolio as one document.
type Snapshot struct {
	Profile        profile.Profile           `json:"profile"`
	Educations     []education.Education     `json:"educations"`
	Certifications []education.Certification `json:"certifications"`
	Courses        []education.Course        `json:"courses"`
	Experiences    []experience.Experience   `json:"experiences"`
	Skills         []experience.Skill        `json:"skills"`
	Languages      []experience.Language     `json:"languages"`
}

// Sample is the starter content a fresh portfolio is seeded with. Records
// carry no ids; the seeder assigns them.
func Sample() Snapshot {
	return Snapshot{
		Educations: []education.Education{{
			Institution:  "University of Colombo",
			Degree:       "Bachelor of Science",
			FieldOfStudy: "Computer Science",
			StartDate:    "2018-09-01",
			EndDate:      "2022-06-30",
			Grade:        "First Class Honours",
			Description:  "Focused on software engineering and data science modules. Completed final year project on machine learning applications in natural language processing.",
		}},
		Certifications: []education.Certification{{
			Name:            "Web Development Professional Certification",
			Issuer:          "Careerone Skills Institute",
			IssueDate:       "2023-03-15",
			CredentialURL:   "https://careerone.gov.lk/certificates/web-dev-pro-123",
			CertificateFile: "https://example.com/sample-certificate.pdf",
		}},
		Courses: []education.Course{{
			Name:           "Advanced JavaScript Programming",
			Provider:       "Careerone Platform",
			CompletionDate: "2023-01-20",
			Description:    "Learned advanced JavaScript concepts including asynchronous programming, closures, and modern ES6+ features.",
		}},
		Experiences: []experience.Experience{{
			Company:     "Tech Innovators Lanka",
			Position:    "Junior Software Developer",
			Location:    "Colombo, Sri Lanka",
			StartDate:   "2022-07-15",
			Current:     true,
			Description: "Working on full-stack web development projects using React, Node.js, and MongoDB. Contributing to both frontend and backend development of enterprise applications.",
		}},
		Skills: []experience.Skill{
			{Name: "JavaScript", Proficiency: experience.Advanced, YearsOfExperience: 3},
			{Name: "React", Proficiency: experience.Intermediate, YearsOfExperience: 2},
			{Name: "Node.js", Proficiency: experience.Intermediate, YearsOfExperience: 1},
		},
		Languages: []experience.Language{
			{Name: "English", Proficiency: experience.Advanced},
			{Name: "Sinhala", Proficiency: experience.Native},
			{Name: "Tamil", Proficiency: experience.Beginner},
		},
	}
}

// IsEmpty reports whether no panel holds a record and the profile is blank.
func (s Snapshot) IsEmpty() bool {
	return s.Profile.IsBlank() &&
		len(s.Educations) == 0 &&
		len(s.Certifications) == 0 &&
		len(s.Courses) == 0 &&
		len(s.Experiences) == 0 &&
		len(s.Skills) == 0 &&
		len(s.Languages) == 0
}
