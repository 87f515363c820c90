package portfolio

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/careerone/portfolio/internal/application/service"
	panelUC "github.com/careerone/portfolio/internal/application/usecase/panel"
	profileUC "github.com/careerone/portfolio/internal/application/usecase/profile"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
	"github.com/careerone/portfolio/internal/domain/portfolio"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const Kind = "portfolio"

//go:embed schema.json
var schemaJSON []byte

// Panels groups the six record panels.
type Panels struct {
	Educations     *panelUC.PanelUseCase[education.Education]
	Certifications *panelUC.PanelUseCase[education.Certification]
	Courses        *panelUC.PanelUseCase[education.Course]
	Experiences    *panelUC.PanelUseCase[experience.Experience]
	Skills         *panelUC.PanelUseCase[experience.Skill]
	Languages      *panelUC.PanelUseCase[experience.Language]
}

type SnapshotUseCase struct {
	profile   *profileUC.ProfileUseCase
	panels    Panels
	publisher service.ActivityPublisher
	schema    *gojsonschema.Schema
	logger    logger.Logger
}

func NewSnapshotUseCase(p *profileUC.ProfileUseCase, panels Panels, pub service.ActivityPublisher, log logger.Logger) (*SnapshotUseCase, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile portfolio schema: %w", err)
	}
	return &SnapshotUseCase{profile: p, panels: panels, publisher: pub, schema: schema, logger: log}, nil
}

func (uc *SnapshotUseCase) ExecuteExport(ctx context.Context) (*portfolio.Snapshot, error) {
	prof, err := uc.profile.ExecuteGetProfile(ctx)
	if err != nil {
		return nil, err
	}
	snap := &portfolio.Snapshot{Profile: *prof.Profile}

	if snap.Educations, err = uc.panels.Educations.List(ctx); err != nil {
		return nil, err
	}
	if snap.Certifications, err = uc.panels.Certifications.List(ctx); err != nil {
		return nil, err
	}
	if snap.Courses, err = uc.panels.Courses.List(ctx); err != nil {
		return nil, err
	}
	if snap.Experiences, err = uc.panels.Experiences.List(ctx); err != nil {
		return nil, err
	}
	if snap.Skills, err = uc.panels.Skills.List(ctx); err != nil {
		return nil, err
	}
	if snap.Languages, err = uc.panels.Languages.List(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// ExecuteImport replaces the whole portfolio with raw. Nothing is written
// unless the document passes the schema and every panel's own checks.
func (uc *SnapshotUseCase) ExecuteImport(ctx context.Context, raw []byte) (*portfolio.Snapshot, error) {
	res, err := uc.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, apperror.NewInvalidInput("portfolio document is not valid JSON", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, apperror.NewInvalidInput("schema validation failed: "+strings.Join(msgs, "; "), nil)
	}

	var snap portfolio.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, apperror.NewInvalidInput("cannot decode portfolio document", err)
	}

	if err := uc.checkAll(&snap); err != nil {
		return nil, err
	}
	if err := uc.replaceAll(ctx, &snap); err != nil {
		return nil, err
	}

	uc.logger.Info("Portfolio imported",
		zap.Int("educations", len(snap.Educations)),
		zap.Int("experiences", len(snap.Experiences)),
		zap.Int("skills", len(snap.Skills)),
	)
	if uc.publisher != nil {
		a := activity.New(Kind, activity.VerbImported, activity.Title(Kind, activity.VerbImported), "Portfolio restored from a snapshot")
		if err := uc.publisher.Publish(ctx, a); err != nil {
			uc.logger.Error("Failed to publish activity", err, zap.String("kind", a.Kind))
		}
	}
	return &snap, nil
}

// ExecuteSeed loads snap under fresh ids. A blank profile is left alone.
func (uc *SnapshotUseCase) ExecuteSeed(ctx context.Context, snap portfolio.Snapshot) error {
	if !snap.Profile.IsBlank() {
		if err := uc.profile.Replace(ctx, &snap.Profile); err != nil {
			return err
		}
	}
	if err := uc.panels.Educations.Seed(ctx, snap.Educations); err != nil {
		return err
	}
	if err := uc.panels.Certifications.Seed(ctx, snap.Certifications); err != nil {
		return err
	}
	if err := uc.panels.Courses.Seed(ctx, snap.Courses); err != nil {
		return err
	}
	if err := uc.panels.Experiences.Seed(ctx, snap.Experiences); err != nil {
		return err
	}
	if err := uc.panels.Skills.Seed(ctx, snap.Skills); err != nil {
		return err
	}
	return uc.panels.Languages.Seed(ctx, snap.Languages)
}

func (uc *SnapshotUseCase) checkAll(snap *portfolio.Snapshot) error {
	if err := snap.Profile.Validate(); err != nil && !snap.Profile.IsBlank() {
		return apperror.NewInvalidInput("profile validation failed", err)
	}
	var err error
	if snap.Educations, err = uc.panels.Educations.Check(snap.Educations); err != nil {
		return err
	}
	if snap.Certifications, err = uc.panels.Certifications.Check(snap.Certifications); err != nil {
		return err
	}
	if snap.Courses, err = uc.panels.Courses.Check(snap.Courses); err != nil {
		return err
	}
	if snap.Experiences, err = uc.panels.Experiences.Check(snap.Experiences); err != nil {
		return err
	}
	if snap.Skills, err = uc.panels.Skills.Check(snap.Skills); err != nil {
		return err
	}
	snap.Languages, err = uc.panels.Languages.Check(snap.Languages)
	return err
}

func (uc *SnapshotUseCase) replaceAll(ctx context.Context, snap *portfolio.Snapshot) error {
	if err := uc.profile.Replace(ctx, &snap.Profile); err != nil {
		return err
	}
	if err := uc.panels.Educations.Replace(ctx, snap.Educations); err != nil {
		return err
	}
	if err := uc.panels.Certifications.Replace(ctx, snap.Certifications); err != nil {
		return err
	}
	if err := uc.panels.Courses.Replace(ctx, snap.Courses); err != nil {
		return err
	}
	if err := uc.panels.Experiences.Replace(ctx, snap.Experiences); err != nil {
		return err
	}
	if err := uc.panels.Skills.Replace(ctx, snap.Skills); err != nil {
		return err
	}
	return uc.panels.Languages.Replace(ctx, snap.Languages)
}
