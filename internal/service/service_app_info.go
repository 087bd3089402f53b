package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
)

// appInfoService answers GET /api/version with the configured version.
type appInfoService struct {
	version string
}

// NewAppInfoService fails with ErrVersionIsNotSpecified for an empty or
// blank cfg.Version; the server falls back to the build version before
// getting here.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Info().Str("version", version).Msg("notes-keeper version")

	return &appInfoService{version: version}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}
