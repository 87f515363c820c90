package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/careerone/portfolio/adapters/event"
	httpAdapter "github.com/careerone/portfolio/adapters/http"
	"github.com/careerone/portfolio/adapters/media_storage"
	"github.com/careerone/portfolio/adapters/persistence"
	"github.com/careerone/portfolio/adapters/render"
	"github.com/careerone/portfolio/internal/application/service"
	activityUC "github.com/careerone/portfolio/internal/application/usecase/activity"
	backupUC "github.com/careerone/portfolio/internal/application/usecase/backup"
	cvUC "github.com/careerone/portfolio/internal/application/usecase/cv"
	mediaUC "github.com/careerone/portfolio/internal/application/usecase/media"
	panelUC "github.com/careerone/portfolio/internal/application/usecase/panel"
	portfolioUC "github.com/careerone/portfolio/internal/application/usecase/portfolio"
	profileUC "github.com/careerone/portfolio/internal/application/usecase/profile"
	"github.com/careerone/portfolio/internal/config"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/internal/domain/education"
	"github.com/careerone/portfolio/internal/domain/experience"
	"github.com/careerone/portfolio/internal/domain/portfolio"
	"github.com/careerone/portfolio/internal/domain/profile"
	"github.com/careerone/portfolio/pkg/logger"
	"github.com/careerone/portfolio/pkg/tracing"
)

type stores struct {
	profile        profile.Repository
	educations     education.Repository
	certifications education.CertificationRepository
	courses        education.CourseRepository
	experiences    experience.Repository
	skills         experience.SkillRepository
	languages      experience.LanguageRepository
	activities     activity.Repository
	persistent     bool
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Start Careerone Portfolio API Server...", zap.String("env", cfg.App.Env))
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := tracing.NewTracerProvider(cfg, appLogger, cfg.App.Name)
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}

	// Storage
	var dbPool *pgxpool.Pool
	st := memoryStores()
	if cfg.Storage.Driver == config.StoragePostgres {
		dbPool, err = persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Postgres", err)
		}
		defer dbPool.Close()

		if err := persistence.RunMigrations(cfg.DB.Migrations, cfg.DB.DSN, appLogger); err != nil {
			appLogger.Fatal("Cannot migrate database", err)
		}
		st = postgresStores(dbPool, appLogger)
	}

	// Activity publisher
	var publisher service.ActivityPublisher = event.NewLocalPublisher(st.activities)
	if len(cfg.Kafka.Brokers) > 0 {
		if !st.persistent {
			appLogger.Warn("Kafka is configured but storage is in memory; the worker cannot share it, recording activities locally")
		} else {
			kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
			if err != nil {
				appLogger.Fatal("Cannot init Kafka", err)
			}
			defer kafkaClient.Close()
			publisher = kafkaClient
		}
	}

	// Preview cache
	var previewCache service.PreviewCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		previewCache = persistence.NewRedisPreviewCache(redisClient, cfg.Redis.PreviewTTL)
	} else {
		previewCache = persistence.NewMemoryPreviewCache(cfg.Redis.PreviewTTL)
	}

	// Uploads
	uploader := media_storage.NewDataURLAdapter()
	var archive service.Uploader
	if cfg.Cloudinary.CloudName != "" {
		cld, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
		uploader = cld
		archive = cld
	}

	renderer := render.NewChromeRenderer(cfg, appLogger)
	defer renderer.Close()

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(st.profile, publisher, appLogger)
	uploadUseCase := mediaUC.NewUploadMediaUseCase(uploader, publisher, appLogger)
	activityUseCase := activityUC.NewActivityUseCase(st.activities, appLogger)

	panels := portfolioUC.Panels{
		Educations:     panelUC.NewPanelUseCase(education.KindEducation, st.educations, publisher, nil, appLogger),
		Certifications: panelUC.NewPanelUseCase(education.KindCertification, st.certifications, publisher, nil, appLogger),
		Courses:        panelUC.NewPanelUseCase(education.KindCourse, st.courses, publisher, nil, appLogger),
		Experiences:    panelUC.NewPanelUseCase(experience.KindExperience, st.experiences, publisher, nil, appLogger),
		Skills: panelUC.NewPanelUseCase(experience.KindSkill, st.skills, publisher, func() experience.Skill {
			return experience.Skill{Proficiency: experience.Beginner}
		}, appLogger),
		Languages: panelUC.NewPanelUseCase(experience.KindLanguage, st.languages, publisher, func() experience.Language {
			return experience.Language{Proficiency: experience.Beginner}
		}, appLogger),
	}

	snapshotUseCase, err := portfolioUC.NewSnapshotUseCase(profileUseCase, panels, publisher, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init snapshot use case", err)
	}
	if cfg.Storage.Seed {
		seedIfEmpty(snapshotUseCase, appLogger)
	}

	backupCtx, stopBackups := context.WithCancel(context.Background())
	defer stopBackups()
	if cfg.Backup.Interval > 0 {
		if archive == nil {
			appLogger.Warn("backup.interval is set but Cloudinary is not configured, backups disabled")
		} else {
			go backupUC.NewBackupUseCase(snapshotUseCase, archive, appLogger).Run(backupCtx, cfg.Backup.Interval)
			appLogger.Info("Portfolio backups scheduled", zap.Duration("interval", cfg.Backup.Interval))
		}
	}

	templates, err := cvUC.NewTemplateRenderer(appLogger)
	if err != nil {
		appLogger.Fatal("Cannot parse CV templates", err)
	}
	var source cv.DocumentSource = cv.MockSource{}
	if cfg.CV.DataSource == config.DataSourcePortfolio {
		source = &cvUC.PortfolioSource{
			Profile:     st.profile,
			Educations:  st.educations,
			Experiences: st.experiences,
			Skills:      st.skills,
			Languages:   st.languages,
		}
	}
	cvUseCase := cvUC.NewCVUseCase(
		source,
		templates,
		cvUC.NewPDFExporter(renderer, templates, appLogger),
		cvUC.NewGenerator(cfg.CV.PreviewDelay, appLogger),
		previewCache,
		archive,
		publisher,
		cfg.CV.Filename,
		appLogger,
	)
	defer cvUseCase.Close()

	// HTTP Handlers
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Educations:      httpAdapter.NewPanelHandler(panels.Educations, appLogger),
		Certifications:  httpAdapter.NewPanelHandler(panels.Certifications, appLogger),
		Courses:         httpAdapter.NewPanelHandler(panels.Courses, appLogger),
		Experiences:     httpAdapter.NewPanelHandler(panels.Experiences, appLogger),
		Skills:          httpAdapter.NewPanelHandler(panels.Skills, appLogger),
		Languages:       httpAdapter.NewPanelHandler(panels.Languages, appLogger),
		Profile:         httpAdapter.NewProfileHandler(profileUseCase, uploadUseCase, appLogger),
		CertificateFile: httpAdapter.NewCertificateFileHandler(uploadUseCase, panels.Certifications, appLogger),
		Upload:          httpAdapter.NewUploadHandler(uploadUseCase),
		CV:              httpAdapter.NewCVHandler(cvUseCase, appLogger),
		Activity:        httpAdapter.NewActivityHandler(activityUseCase, cfg.App.PublicURL, appLogger),
		Portfolio:       httpAdapter.NewPortfolioHandler(snapshotUseCase, appLogger),
	}, appLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Server startup failed", err)
		}
	}()
	appLogger.Info("Server running", zap.String("port", cfg.App.Port), zap.String("storage", cfg.Storage.Driver))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	stopBackups()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	if err := tracing.Shutdown(ctx, tp); err != nil {
		appLogger.Error("Failed to flush traces", err)
	}
	appLogger.Info("Server exited")
}

func memoryStores() *stores {
	return &stores{
		profile:        persistence.NewMemoryProfileRepo(),
		educations:     persistence.NewMemoryPanelRepo[education.Education](education.KindEducation),
		certifications: persistence.NewMemoryPanelRepo[education.Certification](education.KindCertification),
		courses:        persistence.NewMemoryPanelRepo[education.Course](education.KindCourse),
		experiences:    persistence.NewMemoryPanelRepo[experience.Experience](experience.KindExperience),
		skills:         persistence.NewMemoryPanelRepo[experience.Skill](experience.KindSkill),
		languages:      persistence.NewMemoryPanelRepo[experience.Language](experience.KindLanguage),
		activities:     persistence.NewMemoryActivityRepo(),
	}
}

func postgresStores(db *pgxpool.Pool, log logger.Logger) *stores {
	return &stores{
		profile:        persistence.NewPostgresProfileRepo(db, log),
		educations:     persistence.NewPostgresPanelRepo[education.Education](db, education.KindEducation, log),
		certifications: persistence.NewPostgresPanelRepo[education.Certification](db, education.KindCertification, log),
		courses:        persistence.NewPostgresPanelRepo[education.Course](db, education.KindCourse, log),
		experiences:    persistence.NewPostgresPanelRepo[experience.Experience](db, experience.KindExperience, log),
		skills:         persistence.NewPostgresPanelRepo[experience.Skill](db, experience.KindSkill, log),
		languages:      persistence.NewPostgresPanelRepo[experience.Language](db, experience.KindLanguage, log),
		activities:     persistence.NewPostgresActivityRepo(db, log),
		persistent:     true,
	}
}

// seedIfEmpty loads the sample records into a store that holds nothing yet,
// so a restart against Postgres keeps what the user entered.
func seedIfEmpty(uc *portfolioUC.SnapshotUseCase, log logger.Logger) {
	ctx := context.Background()
	current, err := uc.ExecuteExport(ctx)
	if err != nil {
		log.Fatal("Cannot read portfolio before seeding", err)
	}
	if !current.IsEmpty() {
		log.Info("Portfolio already has records, skipping seed")
		return
	}
	if err := uc.ExecuteSeed(ctx, portfolio.Sample()); err != nil {
		log.Fatal("Cannot seed portfolio", err)
	}
	log.Info("Portfolio seeded with sample records")
}
