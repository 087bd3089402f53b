package service

import (
	"fmt"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/store"
)

type Services struct {
	NotesService    NotesService
	IdentityService IdentityService
	AppInfoService  AppInfoService
	HealthService   HealthService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	notesService := NewNotesValidationService().Wrap(NewNotesService(storages.NoteRepository, logger))

	return &Services{
		NotesService:    notesService,
		IdentityService: NewIdentityService(cfg.App, logger),
		AppInfoService:  appInfoService,
		HealthService:   NewHealthService(storages.HealthChecker, logger),
	}, nil
}
