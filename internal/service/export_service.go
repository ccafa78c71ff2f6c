package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/export"
	"github.com/vbonduro/assetreg/internal/filestore"
)

type assetLister interface {
	List(ctx context.Context, f domain.AssetFilter) ([]*domain.Asset, error)
}

// ExportService renders assets to workbooks and labels and archives the
// results in a file store.
type ExportService struct {
	assets   assetLister
	files    filestore.FileStore
	activity activityRecorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewExportService(assets assetLister, files filestore.FileStore, activity activityRecorder, logger *slog.Logger) *ExportService {
	return &ExportService{
		assets:   assets,
		files:    files,
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
}

// WriteAssetWorkbook renders the assets matching f to w.
func (s *ExportService) WriteAssetWorkbook(ctx context.Context, w io.Writer, f domain.AssetFilter) error {
	assets, err := s.assets.List(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}
	return export.WriteWorkbook(w, assets, domain.Civil(s.now()))
}

// ArchiveAssetWorkbook renders the assets matching f and stores the
// workbook. It returns the archive key.
func (s *ExportService) ArchiveAssetWorkbook(ctx context.Context, actor domain.Actor, f domain.AssetFilter) (string, error) {
	var buf bytes.Buffer
	if err := s.WriteAssetWorkbook(ctx, &buf, f); err != nil {
		return "", err
	}

	key, err := s.files.Save(ctx, "assets", filestore.MimeXLSX, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to archive workbook: %w", err)
	}
	s.logger.Info("asset workbook archived", "key", key, "user", actor.Name)
	s.activity.Record(ctx, actor, "exported assets to %s", key)
	return key, nil
}

// OpenArchive returns an archived document and its content type.
func (s *ExportService) OpenArchive(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.files.Get(ctx, key)
}
