package handler

import (
	"net/http"
	"sync"

	"todoapi/config"
	"todoapi/di"
	"todoapi/shared/logger"
	transport "todoapi/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the first request and
// reused, so the in-memory store survives across invocations of a warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
