package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/basketwise/recommender/internal/cfg"
)

const readHeaderTimeout = 2 * time.Second

// Server — HTTP-сервер API рекомендаций.
type Server struct {
	httpServer *http.Server
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort("", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

// Run блокируется до остановки сервера. Штатная остановка через Stop не считается ошибкой.
func (s *Server) Run() error {
	return s.Serve(nil)
}

// Serve обслуживает запросы на переданном listener или открывает свой по cfg.Port.
func (s *Server) Serve(ln net.Listener) error {
	var err error
	if ln == nil {
		err = s.httpServer.ListenAndServe()
	} else {
		err = s.httpServer.Serve(ln)
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Stop дожидается завершения активных запросов, пока не истечёт ctx.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
