package router

import (
	"net/http"

	"speedx/internal/api/v1/handler"
	"speedx/internal/api/v1/middleware"
)

const (
	appName    = "speedx"
	apiVersion = "v1"
	BasePath   = "/" + appName + "/api/" + apiVersion
)

// Options configures the optional parts of the middleware chain.
type Options struct {
	RateLimiter       *middleware.RateLimiter
	BasicAuthUser     string
	BasicAuthPass     string
	CORSAllowedOrigin string
}

func New(h *handler.Handler, opts Options) http.Handler {
	mux := http.NewServeMux()

	register := func(path string, hf http.HandlerFunc) {
		mux.HandleFunc("GET "+BasePath+path, hf)
	}

	register("/health", h.HealthCheck)
	register("/analyze", h.Analyze)
	register("/history", h.History)
	register("/report", h.Report)
	register("/urls", h.URLs)
	register("/thresholds", h.Thresholds)
	mux.HandleFunc("GET /", h.Page)

	var inner http.Handler = mux
	if opts.RateLimiter != nil {
		inner = opts.RateLimiter.Middleware(inner)
	}
	if opts.BasicAuthUser != "" && opts.BasicAuthPass != "" {
		inner = middleware.BasicAuth(opts.BasicAuthUser, opts.BasicAuthPass)(inner)
	}

	origin := opts.CORSAllowedOrigin
	if origin == "" {
		origin = "*"
	}

	return middleware.RecoverPanic(
		middleware.SecureHeaders(
			middleware.Logging(
				middleware.Metrics(
					middleware.CORS(origin)(inner),
				),
			),
		),
	)
}

func NewMetricsRouter() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler.MetricsHandler())
	return mux
}
