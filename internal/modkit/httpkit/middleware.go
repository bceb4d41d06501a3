package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"courtclock/internal/platform/metrics"
	"courtclock/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration
	SlowRequest time.Duration
	CORS        middleware.CORSOptions
}

// CommonStack returns the baseline middleware for API routes
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		metrics.HTTPMiddleware,
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
