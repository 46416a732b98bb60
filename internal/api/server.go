package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huangsam/shiftgrid/internal/contract"
)

const shutdownTimeout = 10 * time.Second

// StartAPIServer serves the REST API until ctx is cancelled, then shuts down gracefully.
func StartAPIServer(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           NewRouter(cfg, mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Shiftgrid API listening on %s", cfg.APIAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("API server exited")
	return nil
}
