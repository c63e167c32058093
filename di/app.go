package di

import (
	"context"
	"smartpark/infras/kafka"
	"smartpark/infras/otel"
	"smartpark/infras/postgres"
	alertService "smartpark/internal/domains/alert/service"
	sessionService "smartpark/internal/domains/session/service"
	"smartpark/transport/http"

	"github.com/rs/zerolog/log"
)

// App is the assembled process: the HTTP surface plus the background workers and
// the connections they share.
type App struct {
	HTTP    *http.HTTP
	Alert   alertService.Alert
	Session sessionService.Session
	Otel    otel.Otel
	DB      *postgres.Connection
	Kafka   kafka.Client
}

// Close flushes traces and releases the broker and database connections.
func (a *App) Close(ctx context.Context) {
	if err := a.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shut down tracer provider")
	}

	if err := a.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka client")
	}

	a.DB.Close()
}
