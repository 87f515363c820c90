package cv

import (
	"errors"
	"fmt"
	"regexp"
)

type Template string

const (
	TemplateClassic  Template = "classic"
	TemplateModern   Template = "modern"
	TemplateCreative Template = "creative"
)

var Fonts = []string{"Roboto", "Arial", "Georgia", "Verdana"}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var ErrInvalidSettings = errors.New("invalid cv settings")

type Sections struct {
	Education  bool `json:"education"`
	Experience bool `json:"experience"`
	Skills     bool `json:"skills"`
	Languages  bool `json:"languages"`
	Summary    bool `json:"summary"`
}

type Settings struct {
	Template     Template `json:"template"`
	PrimaryColor string   `json:"primaryColor"`
	IncludePhoto bool     `json:"includePhoto"`
	FontStyle    string   `json:"fontStyle"`
	Sections     Sections `json:"sections"`
}

func DefaultSettings() Settings {
	return Settings{
		Template:     TemplateClassic,
		PrimaryColor: "#0056b3",
		IncludePhoto: true,
		FontStyle:    "Roboto",
		Sections: Sections{
			Education:  true,
			Experience: true,
			Skills:     true,
			Languages:  true,
			Summary:    true,
		},
	}
}

func (s Settings) Validate() error {
	switch s.Template {
	case TemplateClassic, TemplateModern, TemplateCreative:
	default:
		return fmt.Errorf("%w: unknown template %q", ErrInvalidSettings, s.Template)
	}
	if !colorPattern.MatchString(s.PrimaryColor) {
		return fmt.Errorf("%w: primaryColor must look like #rrggbb, got %q", ErrInvalidSettings, s.PrimaryColor)
	}
	for _, f := range Fonts {
		if f == s.FontStyle {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported font %q", ErrInvalidSettings, s.FontStyle)
}

type SectionsPatch struct {
	Education  *bool `json:"education"`
	Experience *bool `json:"experience"`
	Skills     *bool `json:"skills"`
	Languages  *bool `json:"languages"`
	Summary    *bool `json:"summary"`
}

// SettingsPatch carries only the fields a client changed. Nil fields keep
// their current value.
type SettingsPatch struct {
	Template     *Template      `json:"template"`
	PrimaryColor *string        `json:"primaryColor"`
	IncludePhoto *bool          `json:"includePhoto"`
	FontStyle    *string        `json:"fontStyle"`
	Sections     *SectionsPatch `json:"sections"`
}

func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Template != nil {
		s.Template = *p.Template
	}
	if p.PrimaryColor != nil {
		s.PrimaryColor = *p.PrimaryColor
	}
	if p.IncludePhoto != nil {
		s.IncludePhoto = *p.IncludePhoto
	}
	if p.FontStyle != nil {
		s.FontStyle = *p.FontStyle
	}
	if sp := p.Sections; sp != nil {
		setIf(&s.Sections.Education, sp.Education)
		setIf(&s.Sections.Experience, sp.Experience)
		setIf(&s.Sections.Skills, sp.Skills)
		setIf(&s.Sections.Languages, sp.Languages)
		setIf(&s.Sections.Summary, sp.Summary)
	}
	return s
}

func setIf(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ResolveTemplate maps a selected template to the layout that renders it.
// Only classic has its own layout choice; everything else renders modern.
// fellBack is true when the selection has no layout of its own.
func ResolveTemplate(t Template) (layout Template, fellBack bool) {
	switch t {
	case TemplateClassic:
		return TemplateClassic, false
	case TemplateModern:
		return TemplateModern, false
	}
	return TemplateModern, true
}
