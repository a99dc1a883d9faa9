package handler

import (
	"net/http"
	"parkflow/config"
	"parkflow/di"
	"parkflow/shared/logger"
	parkflowHTTP "parkflow/transport/http"
	"sync"
)

var (
	app  *parkflowHTTP.HTTP
	once sync.Once
)

// Handler is the serverless entrypoint. Warm instances reuse the wired app.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger(config.Get())

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
