package debug

import (
	"errors"
	"net/http"
	_ "net/http/pprof"

	"go.uber.org/zap"

	"speedx/internal/log"
)

// StartPprof serves the default mux, where net/http/pprof registers its
// handlers, on host. Only started in development.
func StartPprof(host string) {
	go func() {
		log.Logger.Info("pprof listening", zap.String("host", host))
		if err := http.ListenAndServe(host, nil); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Error("pprof failed", zap.Error(err))
		}
	}()
}
