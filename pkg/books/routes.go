package books

import (
	"github.com/bookshelf/bookshelf/pkg/binder"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the book routes under /books.
func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
	}

	g := e.Group("/books", lenientPayloads)
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.deleteBook)
}

// lenientPayloads makes the binder drop unknown fields and accept empty bodies
// for book payloads. An empty create stores a book with every column null.
func lenientPayloads(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(binder.DisallowUnknownFieldsKey, false)
		c.Set(binder.DisallowEmptyBodyKey, false)
		return next(c)
	}
}
