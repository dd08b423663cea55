package main

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/rumahkos/kos-bff/internal/api"
	"github.com/rumahkos/kos-bff/internal/config"
	"github.com/rumahkos/kos-bff/internal/logger"
	"github.com/rumahkos/kos-bff/internal/tracing"
)

func main() {
	cfg := config.Load()

	logger.Init()
	zlog.Info().Msg("logger initialized")

	ctx := context.Background()
	tp, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    "kos-bff",
		ServiceVersion: "1.0.0",
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingOn,
	})
	if err != nil {
		zlog.Warn().Err(err).Msg("tracing disabled")
	} else {
		defer tp.Shutdown(ctx)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Warn().Err(err).Msg("redis unreachable, rate limiting disabled")
			rdb = nil
		}
	}

	r := api.NewRouter(cfg, rdb)

	zlog.Info().Str("port", cfg.Port).Str("upstream", cfg.KosAPIURL).Msg("kos BFF starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zlog.Fatal().Err(err).Msg("server failed")
	}
}
