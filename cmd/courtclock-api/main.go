// @title         courtclock API
// @version       0.1.0
// @description   Legal deadline calculation with weekend, holiday and court day rules

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtclock/internal/modkit/httpkit"
	"courtclock/internal/modkit/repokit"
	"courtclock/internal/platform/config"
	"courtclock/internal/platform/logger"
	phttp "courtclock/internal/platform/net/http"
	"courtclock/internal/platform/net/middleware"
	"courtclock/internal/platform/store"

	"courtclock/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SERVICE_PGSQL_ENABLED=false runs without holidays or audits; court days then warn
	st, err := store.Open(ctx, store.ConfigFromEnv("courtclock-api", root), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_PORT / CORE_API_READ_TIMEOUT / CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Store:  st,
			Logger: l,
			Stack: httpkit.StackOptions{
				Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
				SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", time.Second),
				CORS: middleware.CORSOptions{
					AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
				},
			},
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
