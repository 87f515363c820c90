package cv

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/pkg/logger"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

type TemplateRenderer struct {
	tmpl   *template.Template
	logger logger.Logger
}

func NewTemplateRenderer(log logger.Logger) (*TemplateRenderer, error) {
	tmpl, err := template.New("cv").Funcs(template.FuncMap{
		"formatDate":   cv.FormatDate,
		"skillDots":    cv.SkillDots,
		"languageDots": cv.LanguageDots,
		"skillBar":     cv.SkillBar,
		"languageBar":  cv.LanguageBar,
		"dots":         dots,
		"imgsrc":       imgsrc,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse cv templates: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl, logger: log}, nil
}

type layoutView struct {
	Layout    cv.Template
	IsClassic bool
	ShowPhoto bool
	Color     template.CSS
	Font      template.CSS
	Settings  cv.Settings
	Doc       *cv.Document
}

// Render produces the preview document for doc under settings. The result
// contains exactly one #cv-preview element.
func (r *TemplateRenderer) Render(doc *cv.Document, settings cv.Settings) (string, error) {
	if err := settings.Validate(); err != nil {
		return "", err
	}

	layout, fellBack := cv.ResolveTemplate(settings.Template)
	if fellBack {
		r.logger.Warn("Template has no layout of its own, rendering fallback",
			zap.String("template", string(settings.Template)),
			zap.String("layout", string(layout)),
		)
	}

	// colour and font were checked by settings.Validate
	view := layoutView{
		Layout:    layout,
		IsClassic: layout == cv.TemplateClassic,
		ShowPhoto: settings.IncludePhoto && imgsrc(doc.Contact.Photo) != "",
		Color:     template.CSS(settings.PrimaryColor),
		Font:      template.CSS(fmt.Sprintf("'%s', sans-serif", settings.FontStyle)),
		Settings:  settings,
		Doc:       doc,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", view); err != nil {
		return "", fmt.Errorf("render %s layout: %w", layout, err)
	}
	return buf.String(), nil
}

type pdfPageView struct {
	Image    template.URL
	WidthMM  template.CSS
	HeightMM template.CSS
}

// RenderPDFPage wraps a PNG capture in a single A4 page, scaled to the page
// width and anchored top left.
func (r *TemplateRenderer) RenderPDFPage(png []byte, widthMM, heightMM float64) (string, error) {
	view := pdfPageView{
		Image:    template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		WidthMM:  template.CSS(fmt.Sprintf("%.2f", widthMM)),
		HeightMM: template.CSS(fmt.Sprintf("%.2f", heightMM)),
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "pdf_page", view); err != nil {
		return "", fmt.Errorf("render pdf page: %w", err)
	}
	return buf.String(), nil
}

func dots(n int) []struct{} {
	if n < 0 {
		n = 0
	}
	return make([]struct{}, n)
}

// imgsrc admits embedded images and http(s) URLs; anything else renders
// no image.
func imgsrc(src string) template.URL {
	switch {
	case strings.HasPrefix(src, "data:image/"),
		strings.HasPrefix(src, "https://"),
		strings.HasPrefix(src, "http://"):
		return template.URL(src)
	}
	return ""
}
