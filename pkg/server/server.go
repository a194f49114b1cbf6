package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bookshelf/bookshelf/pkg/binder"
	"github.com/bookshelf/bookshelf/pkg/books"
	"github.com/bookshelf/bookshelf/pkg/config"
	"github.com/bookshelf/bookshelf/pkg/errcodes"
	"github.com/bookshelf/bookshelf/pkg/testutils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b
	e.JSONSerializer = &jsonSerializer{}

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	books.RegisterRoutes(e, db)

	// Test-only routes for resetting state between end-to-end runs.
	if cfg.Environment == config.EnvironmentTest {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
