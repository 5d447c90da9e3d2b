package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/sheltr/pkg/http/router"
	"github.com/lintang-b-s/sheltr/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/sheltr/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log   *zap.Logger
	group *errgroup.Group
	done  chan struct{}
	err   error
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. Done is closed as soon as the API stops, either because ctx
// was cancelled or because the listener failed.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
	registry *prometheus.Registry,

) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	server := router.NewAPI(log)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(
			gctx, config,
			useRateLimit, routingService, metricsHandler,
		)
	})
	s.group = g
	s.done = make(chan struct{})
	go func() {
		s.err = g.Wait()
		close(s.done)
	}()

	return s, nil
}

func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) Wait() error {
	if s.done == nil {
		return nil
	}
	<-s.done
	return s.err
}

// GracefulShutdown blocks until SIGINT or SIGTERM or until done is closed. the signal is nil when
// the server stopped on its own.
func GracefulShutdown(done <-chan struct{}) os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case sig := <-quit:
		return sig
	case <-done:
		return nil
	}
}
