package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/models"
)

// identityService resolves bearer tokens signed with the shared HS256 key.
// It holds no state besides its configuration.
type identityService struct {
	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewIdentityService(cfg config.App, logger *logger.Logger) IdentityService {
	return &identityService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

func (s *identityService) CreateToken(ctx context.Context, userID int64) (models.Token, error) {
	if userID <= 0 {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, ErrInvalidDataProvided)
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, userID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken normalises every validation failure to ErrTokenIsExpiredOrInvalid.
func (s *identityService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "identityService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	if token.UserID <= 0 {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
