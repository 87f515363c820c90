package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/careerone/portfolio/adapters/persistence"
	panelUC "github.com/careerone/portfolio/internal/application/usecase/panel"
	portfolioUC "github.com/careerone/portfolio/internal/application/usecase/portfolio"
	profileUC "github.com/careerone/portfolio/internal/application/usecase/profile"
	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
	"github.com/careerone/portfolio/internal/domain/portfolio"
	"github.com/careerone/portfolio/pkg/logger"
)

// Loads a portfolio into Postgres: the snapshot file given as the first
// argument, or the sample records when there is none.
func main() {
	fmt.Println("seeding portfolio into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")
	MIGRATIONS := os.Getenv("DB_MIGRATIONS")
	if MIGRATIONS == "" {
		MIGRATIONS = "file://migrations"
	}

	appLogger := logger.NewZapLogger("development")
	if err := persistence.RunMigrations(MIGRATIONS, DSN, appLogger); err != nil {
		log.Fatalf("cannot migrate DB: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	panels := portfolioUC.Panels{
		Educations:     panelUC.NewPanelUseCase(education.KindEducation, persistence.NewPostgresPanelRepo[education.Education](pool, education.KindEducation, appLogger), nil, nil, appLogger),
		Certifications: panelUC.NewPanelUseCase(education.KindCertification, persistence.NewPostgresPanelRepo[education.Certification](pool, education.KindCertification, appLogger), nil, nil, appLogger),
		Courses:        panelUC.NewPanelUseCase(education.KindCourse, persistence.NewPostgresPanelRepo[education.Course](pool, education.KindCourse, appLogger), nil, nil, appLogger),
		Experiences:    panelUC.NewPanelUseCase(experience.KindExperience, persistence.NewPostgresPanelRepo[experience.Experience](pool, experience.KindExperience, appLogger), nil, nil, appLogger),
		Skills:         panelUC.NewPanelUseCase(experience.KindSkill, persistence.NewPostgresPanelRepo[experience.Skill](pool, experience.KindSkill, appLogger), nil, nil, appLogger),
		Languages:      panelUC.NewPanelUseCase(experience.KindLanguage, persistence.NewPostgresPanelRepo[experience.Language](pool, experience.KindLanguage, appLogger), nil, nil, appLogger),
	}
	profileUseCase := profileUC.NewProfileUseCase(persistence.NewPostgresProfileRepo(pool, appLogger), nil, appLogger)

	snapshotUseCase, err := portfolioUC.NewSnapshotUseCase(profileUseCase, panels, nil, appLogger)
	if err != nil {
		log.Fatalf("cannot init snapshot: %v", err)
	}

	if len(os.Args) > 1 {
		raw, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("cannot read snapshot: %v", err)
		}
		if _, err := snapshotUseCase.ExecuteImport(context.Background(), raw); err != nil {
			log.Fatalf("cannot import snapshot: %v", err)
		}
		fmt.Printf("imported portfolio from '%s' successfully!\n", os.Args[1])
		return
	}

	if err := snapshotUseCase.ExecuteSeed(context.Background(), portfolio.Sample()); err != nil {
		log.Fatalf("cannot seed portfolio: %v", err)
	}
	fmt.Println("seeded sample portfolio successfully!")
}
