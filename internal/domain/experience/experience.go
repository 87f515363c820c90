package experience

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/careerone/portfolio/internal/domain/panel"
)

const (
	KindExperience = "experience"
	KindSkill      = "skill"
	KindLanguage   = "language"
)

type Proficiency string

const (
	Beginner     Proficiency = "beginner"
	Intermediate Proficiency = "intermediate"
	Advanced     Proficiency = "advanced"
	Expert       Proficiency = "expert"
	Native       Proficiency = "native"
)

var (
	SkillLevels    = []Proficiency{Beginner, Intermediate, Advanced, Expert}
	LanguageLevels = []Proficiency{Beginner, Intermediate, Advanced, Native}
)

func levelNames(levels []Proficiency) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}
	return out
}

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (e Experience) Identity() string { return e.ID }

func (e Experience) WithIdentity(id string) Experience {
	e.ID = id
	return e
}

func (e Experience) Label() string {
	return e.Position + " at " + e.Company
}

// Normalize drops the end date of an ongoing position.
func (e Experience) Normalize() Experience {
	if e.Current {
		e.EndDate = ""
	}
	return e
}

func (e Experience) Validate() error {
	return panel.CheckRequired(
		panel.Require("company", e.Company),
		panel.Require("position", e.Position),
		panel.Require("startDate", e.StartDate),
	)
}

// Years is a non-negative year count. It decodes from a JSON number or a
// string with a leading integer ("3", "12 years"); anything else decodes to
// zero.
type Years int

func (y *Years) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*y = 0
			return nil
		}
		*y = Years(max(leadingInt(strings.TrimSpace(s)), 0))
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil || n < 0 {
		*y = 0
		return nil
	}
	*y = Years(int(n))
	return nil
}

// leadingInt reads an optional sign and the digits that follow it.
func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

type Skill struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Proficiency       Proficiency `json:"proficiency"`
	YearsOfExperience Years       `json:"yearsOfExperience"`
}

func (s Skill) Identity() string { return s.ID }

func (s Skill) WithIdentity(id string) Skill {
	s.ID = id
	return s
}

func (s Skill) Label() string { return s.Name }

func (s Skill) Normalize() Skill {
	if s.YearsOfExperience < 0 {
		s.YearsOfExperience = 0
	}
	return s
}

func (s Skill) Validate() error {
	if err := panel.CheckRequired(
		panel.Require("name", s.Name),
		panel.Require("proficiency", string(s.Proficiency)),
	); err != nil {
		return err
	}
	return panel.CheckOneOf("proficiency", string(s.Proficiency), levelNames(SkillLevels)...)
}

type Language struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

func (l Language) Identity() string { return l.ID }

func (l Language) WithIdentity(id string) Language {
	l.ID = id
	return l
}

func (l Language) Label() string { return l.Name }

func (l Language) Validate() error {
	if err := panel.CheckRequired(
		panel.Require("name", l.Name),
		panel.Require("proficiency", string(l.Proficiency)),
	); err != nil {
		return err
	}
	return panel.CheckOneOf("proficiency", string(l.Proficiency), levelNames(LanguageLevels)...)
}

type Repository = panel.Repository[Experience]
type SkillRepository = panel.Repository[Skill]
type LanguageRepository = panel.Repository[Language]
