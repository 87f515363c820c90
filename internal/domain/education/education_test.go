package education

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careerone/portfolio/internal/domain/panel"
)

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"education complete", Education{Institution: "UoC", Degree: "BSc", FieldOfStudy: "CS", StartDate: "2018-09-01"}.Validate()},
		{"certification complete", Certification{Name: "Web Dev", Issuer: "Careerone", IssueDate: "2023-03-15"}.Validate()},
		{"course complete", Course{Name: "Advanced JS", Provider: "Udemy", CompletionDate: "2022-12-10"}.Validate()},
	}
	for _, tt := range tests {
		assert.NoError(t, tt.err, tt.name)
	}

	assert.ErrorIs(t, Education{Institution: "UoC"}.Validate(), panel.ErrMissingField)
	assert.ErrorIs(t, Certification{Name: "Web Dev"}.Validate(), panel.ErrMissingField)
	assert.ErrorIs(t, Course{Provider: "Udemy"}.Validate(), panel.ErrMissingField)
}

func TestOptionalFieldsStayOptional(t *testing.T) {
	e := Education{Institution: "UoC", Degree: "BSc", FieldOfStudy: "CS", StartDate: "2018-09-01"}
	assert.Empty(t, e.EndDate)
	assert.NoError(t, e.Validate())
}
