package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerone/portfolio/internal/domain/experience"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, TemplateClassic, s.Template)
	assert.Equal(t, "#0056b3", s.PrimaryColor)
	assert.True(t, s.IncludePhoto)
	assert.True(t, s.Sections.Summary)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{"creative is selectable", func(s *Settings) { s.Template = TemplateCreative }, true},
		{"unknown template", func(s *Settings) { s.Template = "fancy" }, false},
		{"short colour", func(s *Settings) { s.PrimaryColor = "#fff" }, false},
		{"css injection in colour", func(s *Settings) { s.PrimaryColor = "red;}body{" }, false},
		{"upper case hex", func(s *Settings) { s.PrimaryColor = "#A1B2C3" }, true},
		{"unknown font", func(s *Settings) { s.FontStyle = "Comic Sans" }, false},
		{"georgia", func(s *Settings) { s.FontStyle = "Georgia" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			}
		})
	}
}

func TestSettingsPatchOnlyTouchesGivenFields(t *testing.T) {
	off := false
	modern := TemplateModern
	patch := SettingsPatch{
		Template: &modern,
		Sections: &SectionsPatch{Skills: &off},
	}

	got := patch.Apply(DefaultSettings())

	assert.Equal(t, TemplateModern, got.Template)
	assert.False(t, got.Sections.Skills)
	assert.True(t, got.Sections.Languages)
	assert.True(t, got.Sections.Education)
	assert.Equal(t, "Roboto", got.FontStyle)
}

func TestResolveTemplate(t *testing.T) {
	layout, fellBack := ResolveTemplate(TemplateClassic)
	assert.Equal(t, TemplateClassic, layout)
	assert.False(t, fellBack)

	layout, fellBack = ResolveTemplate(TemplateModern)
	assert.Equal(t, TemplateModern, layout)
	assert.False(t, fellBack)

	layout, fellBack = ResolveTemplate(TemplateCreative)
	assert.Equal(t, TemplateModern, layout)
	assert.True(t, fellBack)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "September 2018", FormatDate("2018-09-01"))
	assert.Equal(t, "Present", FormatDate(""))
	assert.Equal(t, "sometime", FormatDate("sometime"))
	assert.Equal(t, "", FormatListDate(""))
	assert.Equal(t, "June 2022", FormatListDate("2022-06-30"))
}

func TestProficiencyScales(t *testing.T) {
	assert.Equal(t, 1, SkillDots(experience.Beginner))
	assert.Equal(t, 3, SkillDots(experience.Intermediate))
	assert.Equal(t, 5, SkillDots(experience.Advanced))
	assert.Equal(t, 5, SkillDots(experience.Expert))

	assert.Equal(t, 1, LanguageDots(experience.Beginner))
	assert.Equal(t, 3, LanguageDots(experience.Intermediate))
	assert.Equal(t, 4, LanguageDots(experience.Advanced))
	assert.Equal(t, 5, LanguageDots(experience.Native))

	assert.Equal(t, 30, SkillBar(experience.Beginner))
	assert.Equal(t, 60, SkillBar(experience.Intermediate))
	assert.Equal(t, 90, SkillBar(experience.Expert))

	assert.Equal(t, 30, LanguageBar(experience.Beginner))
	assert.Equal(t, 60, LanguageBar(experience.Intermediate))
	assert.Equal(t, 80, LanguageBar(experience.Advanced))
	assert.Equal(t, 100, LanguageBar(experience.Native))
}

func TestFitToPage(t *testing.T) {
	w, h := FitToPage(800, 1200)
	assert.Equal(t, A4WidthMM, w)
	assert.InDelta(t, 315.0, h, 1e-9)

	w, h = FitToPage(1000, 500)
	assert.Equal(t, A4WidthMM, w)
	assert.InDelta(t, 105.0, h, 1e-9)

	_, h = FitToPage(0, 500)
	assert.Zero(t, h)
}

func TestPreviewStatus(t *testing.T) {
	assert.True(t, PreviewStatus{State: StateReady}.IsReady())
	assert.False(t, PreviewStatus{State: StateGenerating}.IsReady())
}

func TestMockDocument(t *testing.T) {
	doc := MockDocument()
	assert.Equal(t, "Amal", doc.Contact.FirstName)
	assert.NotEmpty(t, doc.Educations)
	assert.NotEmpty(t, doc.Experiences)
	assert.NotEmpty(t, doc.Skills)
	assert.NotEmpty(t, doc.Languages)
}
