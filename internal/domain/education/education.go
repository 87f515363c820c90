package education

import "github.com/careerone/portfolio/internal/domain/panel"

const (
	KindEducation     = "education"
	KindCertification = "certification"
	KindCourse        = "course"
)

type Education struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Grade        string `json:"grade"`
	Description  string `json:"description"`
}

func (e Education) Identity() string { return e.ID }

func (e Education) WithIdentity(id string) Education {
	e.ID = id
	return e
}

func (e Education) Label() string {
	return e.Degree + " in " + e.FieldOfStudy + ", " + e.Institution
}

func (e Education) Validate() error {
	return panel.CheckRequired(
		panel.Require("institution", e.Institution),
		panel.Require("degree", e.Degree),
		panel.Require("fieldOfStudy", e.FieldOfStudy),
		panel.Require("startDate", e.StartDate),
	)
}

type Certification struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Issuer          string `json:"issuer"`
	IssueDate       string `json:"issueDate"`
	ExpiryDate      string `json:"expiryDate"`
	CredentialURL   string `json:"credentialUrl"`
	CertificateFile string `json:"certificateFile"`
}

func (c Certification) Identity() string { return c.ID }

func (c Certification) WithIdentity(id string) Certification {
	c.ID = id
	return c
}

func (c Certification) Label() string { return c.Name }

func (c Certification) Validate() error {
	return panel.CheckRequired(
		panel.Require("name", c.Name),
		panel.Require("issuer", c.Issuer),
		panel.Require("issueDate", c.IssueDate),
	)
}

type Course struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Provider       string `json:"provider"`
	CompletionDate string `json:"completionDate"`
	Description    string `json:"description"`
}

func (c Course) Identity() string { return c.ID }

func (c Course) WithIdentity(id string) Course {
	c.ID = id
	return c
}

func (c Course) Label() string { return c.Name }

func (c Course) Validate() error {
	return panel.CheckRequired(
		panel.Require("name", c.Name),
		panel.Require("provider", c.Provider),
		panel.Require("completionDate", c.CompletionDate),
	)
}

type Repository = panel.Repository[Education]
type CertificationRepository = panel.Repository[Certification]
type CourseRepository = panel.Repository[Course]
