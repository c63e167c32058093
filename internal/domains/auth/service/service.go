package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"smartpark/infras/jwt"
	"smartpark/infras/otel"
	"smartpark/internal/domains/auth/model/dto"
	"smartpark/shared/constant"
	"smartpark/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Auth mints access tokens for the admin surface. Callers are trusted services
// that already passed the API key check.
type Auth interface {
	IssueToken(ctx context.Context, req dto.IssueTokenRequest) (dto.TokenResponse, error)
}

type serviceImpl struct {
	jwtService jwt.JWT
	clock      timezone.Clock
	otel       otel.Otel
}

func New(jwt jwt.JWT, clock timezone.Clock, otel otel.Otel) Auth {
	return &serviceImpl{
		jwtService: jwt,
		clock:      clock,
		otel:       otel,
	}
}

func (s *serviceImpl) IssueToken(ctx context.Context, req dto.IssueTokenRequest) (res dto.TokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.IssueToken")
	defer scope.End()

	token, expiresAt, err := s.jwtService.GenerateAccessToken(req.AdminID, req.Role)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("admin_id", req.AdminID).Msg("failed to generate access token")

		return res, fmt.Errorf("failed to generate access token: %w", err)
	}

	res.FromToken(token, expiresAt, s.clock.Now())

	log.Info().Str("admin_id", req.AdminID).Str("role", req.Role).Time("expires_at", expiresAt).Msg("admin token issued")

	return res, nil
}
