package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/dermascan/internal/config"
	"github.com/example/dermascan/internal/handlers"
)

const defaultShutdownTimeout = 15 * time.Second

// Server wraps the HTTP server and its router. All runtime configuration is
// injected once at construction; nothing else is shared across requests.
type Server struct {
	httpServer      *http.Server
	cfg             *config.Config
	log             *zap.Logger
	shutdownTimeout time.Duration
}

func New(cfg *config.Config, h *handlers.Handler, log *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(h.Recovery())
	router.Use(sessions.Sessions("dermascan_session", cookie.NewStore([]byte(cfg.Web.SessionSecret))))

	router.LoadHTMLGlob(cfg.Web.TemplateGlob)
	router.Static("/static", cfg.Web.StaticDir)
	router.MaxMultipartMemory = cfg.Upload.MaxSize

	h.Register(router)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	srv := &Server{
		httpServer: &http.Server{
			Addr:           addr,
			Handler:        router,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		cfg:             cfg,
		log:             log,
		shutdownTimeout: defaultShutdownTimeout,
	}

	log.Info("server created", zap.String("addr", addr))
	return srv
}

// Run serves until an interrupt or termination signal arrives, then shuts
// down gracefully.
func (s *Server) Run() error {
	s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
	return serveWithOptions(s.httpServer, s.shutdownTimeout, s.log, nil, nil)
}

// serveWithOptions runs the server and waits for either a serve error or a
// shutdown signal. The listener and signal channel are injectable for tests.
func serveWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
