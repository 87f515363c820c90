package cv

import (
	"time"

	"github.com/careerone/portfolio/internal/domain/experience"
)

const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0

	dateLayout    = "2006-01-02"
	displayLayout = "January 2006"
)

// FormatDate renders a YYYY-MM-DD date as "Month YYYY". A blank date is an
// open end and reads "Present". Unparseable input is returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return "Present"
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(displayLayout)
}

// FormatListDate is FormatDate for record listings, where a blank date
// stays blank.
func FormatListDate(s string) string {
	if s == "" {
		return ""
	}
	return FormatDate(s)
}

func SkillDots(p experience.Proficiency) int {
	switch p {
	case experience.Beginner:
		return 1
	case experience.Intermediate:
		return 3
	}
	return 5
}

func LanguageDots(p experience.Proficiency) int {
	switch p {
	case experience.Beginner:
		return 1
	case experience.Intermediate:
		return 3
	case experience.Advanced:
		return 4
	}
	return 5
}

// SkillBar is the filled width of a skill bar in percent.
func SkillBar(p experience.Proficiency) int {
	switch p {
	case experience.Beginner:
		return 30
	case experience.Intermediate:
		return 60
	}
	return 90
}

func LanguageBar(p experience.Proficiency) int {
	switch p {
	case experience.Beginner:
		return 30
	case experience.Intermediate:
		return 60
	case experience.Advanced:
		return 80
	}
	return 100
}

// FitToPage scales a bitmap to the A4 page width keeping its aspect ratio.
// The height is not clamped to the page; taller captures overflow it.
func FitToPage(pxWidth, pxHeight int) (widthMM, heightMM float64) {
	if pxWidth <= 0 || pxHeight <= 0 {
		return A4WidthMM, 0
	}
	return A4WidthMM, float64(pxHeight) * A4WidthMM / float64(pxWidth)
}
