// Package server exposes the computed load-duration tables over HTTP so
// charting frontends can consume them. It is a read-only view: the tables are
// computed elsewhere and handed in whole.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/crestgauge/loadduration/internal/ldc"
	"github.com/crestgauge/loadduration/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	httpCfg  config.HTTPData
	Server   http.Server
	logger   *zap.SugaredLogger
	handlers *Handlers

	mu     sync.RWMutex
	result *ldc.Result
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, httpCfg config.HTTPData, logger *zap.SugaredLogger) *Controller {
	if httpCfg.ListenAddr == "" {
		logger.Info("http.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		httpCfg.ListenAddr = "0.0.0.0"
	}
	if httpCfg.Port == 0 {
		logger.Info("http.port not provided; defaulting to 8080")
		httpCfg.Port = 8080
	}

	ctrl := &Controller{
		ctx:     ctx,
		wg:      wg,
		httpCfg: httpCfg,
		logger:  logger,
	}
	ctrl.handlers = NewHandlers(ctrl)
	return ctrl
}

// SetResult publishes a freshly computed result to the handlers.
func (c *Controller) SetResult(res *ldc.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = res
}

func (c *Controller) getResult() *ldc.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// Router builds the HTTP route table.
func (c *Controller) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/curve", c.handlers.GetCurve).Methods(http.MethodGet)
	router.HandleFunc("/api/regimes", c.handlers.GetRegimes).Methods(http.MethodGet)
	router.HandleFunc("/api/diagnostics", c.handlers.GetDiagnostics).Methods(http.MethodGet)
	router.HandleFunc("/api/health", c.handlers.GetHealth).Methods(http.MethodGet)
	return router
}

// StartController begins serving and shuts down gracefully when the
// controller's context is cancelled.
func (c *Controller) StartController() error {
	addr := fmt.Sprintf("%s:%d", c.httpCfg.ListenAddr, c.httpCfg.Port)
	c.Server = http.Server{
		Addr:    addr,
		Handler: c.Router(),
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			c.logger.Errorf("error shutting down HTTP server: %v", err)
		}
	}()

	c.logger.Infof("serving load-duration tables on %s", addr)
	if err := c.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %v", err)
	}
	return nil
}
