package handler

import (
	"net/http"
	"smartpark/config"
	"smartpark/di"
	"smartpark/shared/logger"
	"sync"
)

var (
	app  *di.App
	once sync.Once
)

// Handler serves requests on a serverless runtime. Background workers are not
// started here; the alert scheduler runs in the long-lived process only.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	app.HTTP.ServeHTTP(w, r)
}
