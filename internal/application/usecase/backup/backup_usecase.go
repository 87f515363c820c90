package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/domain/portfolio"
	"github.com/careerone/portfolio/pkg/logger"
	"go.uber.org/zap"
)

const folder = "portfolio/backups"

// Exporter is the part of the snapshot use case a backup needs.
type Exporter interface {
	ExecuteExport(ctx context.Context) (*portfolio.Snapshot, error)
}

// BackupUseCase uploads the portfolio snapshot as a JSON file. The file can
// be fed back through the import endpoint.
type BackupUseCase struct {
	exporter Exporter
	uploader service.Uploader
	logger   logger.Logger
	now      func() time.Time
}

func NewBackupUseCase(exporter Exporter, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		exporter: exporter,
		uploader: uploader,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *BackupUseCase) Execute(ctx context.Context) (string, error) {
	uc.logger.Info("Starting portfolio backup...")

	snap, err := uc.exporter.ExecuteExport(ctx)
	if err != nil {
		return "", fmt.Errorf("export portfolio: %w", err)
	}
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal portfolio: %w", err)
	}

	timestamp := uc.now().UTC().Format("2006-01-02_15-04-05")
	publicID := fmt.Sprintf("backup-%s.json", timestamp)

	url, err := uc.uploader.Upload(ctx, bytes.NewReader(body), folder, publicID)
	if err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}

	uc.logger.Info("Portfolio backup uploaded",
		zap.String("url", url),
		zap.String("public_id", publicID),
		zap.Int("bytes", len(body)),
	)
	return url, nil
}

// Run takes a backup every interval until ctx is done. Failures are logged
// and the next tick tries again.
func (uc *BackupUseCase) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil {
				uc.logger.Error("Portfolio backup failed", err)
			}
		}
	}
}
