package main

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/example/dermascan/internal/analysis"
	"github.com/example/dermascan/internal/config"
	"github.com/example/dermascan/internal/handlers"
	"github.com/example/dermascan/internal/imaging"
	"github.com/example/dermascan/internal/logging"
	"github.com/example/dermascan/internal/server"
)

func main() {
	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.Web.SessionSecret == config.DefaultSessionSecret {
		logger.Warn("SESSION_SECRET not set, using insecure development fallback")
	}

	analyzer := imaging.NewAnalyzer(logger)
	// Production scoring is intentionally non-reproducible; tests inject a
	// fixed seed instead.
	scorer := analysis.NewScorer(rand.New(rand.NewSource(time.Now().UnixNano())), logger)
	h := handlers.New(cfg, analyzer, scorer, logger)

	srv := server.New(cfg, h, logger)
	if err := srv.Run(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server exited")
}
