// The server package exposes a stored ranking through a read-only HTTP API.
//
// Routes:
//
//	GET /ranks?limit=N   the first N entries of the ranking (default 10)
//	GET /ranks/:id       the entry of one vertex
//	GET /healthz         the number of ranked vertices and served requests
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vertex-lab/linkrank/pkg/models"
	"github.com/vertex-lab/linkrank/pkg/utils/logger"
)

const (
	DefaultLimit int = 10
	MaxLimit     int = 1000

	shutdownTimeout = 5 * time.Second
)

// Health is the body of the /healthz response.
type Health struct {
	Status   string `json:"status"`
	Ranked   int    `json:"ranked"`
	Requests int64  `json:"requests"`
}

// Server serves the ranking held by a ResultStore.
type Server struct {
	echo     *echo.Echo
	store    models.ResultStore
	log      *logger.Aggregate
	requests *xsync.Counter
}

// New() returns a Server over the store. The logger can be nil.
func New(store models.ResultStore, log *logger.Aggregate) (*Server, error) {
	if store == nil {
		return nil, models.ErrNilStorePointer
	}

	if err := store.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		echo:     echo.New(),
		store:    store,
		log:      log,
		requests: xsync.NewCounter(),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.count)

	s.echo.GET("/ranks", s.top)
	s.echo.GET("/ranks/:id", s.vertex)
	s.echo.GET("/healthz", s.health)
	return s, nil
}

// Handler() returns the http.Handler of the server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run() listens on addr until the context is cancelled, then shuts the server down.
func (s *Server) Run(ctx context.Context, addr string) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.echo.Start(addr)
	}()

	s.log.Info("Server: listening on %v", addr)

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.log.Info("Server: shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) count(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.requests.Inc()
		return next(c)
	}
}

func (s *Server) top(c echo.Context) error {
	limit := DefaultLimit
	if strLimit := c.QueryParam("limit"); strLimit != "" {
		var err error
		limit, err = strconv.Atoi(strLimit)
		if err != nil || limit <= 0 || limit > MaxLimit {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("limit should be an integer between 1 and %d", MaxLimit))
		}
	}

	ranking, err := s.store.Top(c.Request().Context(), limit)
	if err != nil {
		s.log.Error("Server: failed to fetch the top %d: %v", limit, err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, ranking)
}

func (s *Server) vertex(c echo.Context) error {
	ID := c.Param("id")
	entry, err := s.store.Vertex(c.Request().Context(), ID)
	switch {
	case errors.Is(err, models.ErrVertexNotFound):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("vertex %v not found", ID))

	case err != nil:
		s.log.Error("Server: failed to fetch %v: %v", ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, entry)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, Health{
		Status:   "ok",
		Ranked:   s.store.Size(c.Request().Context()),
		Requests: s.requests.Value(),
	})
}
