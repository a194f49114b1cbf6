package books

import (
	"net/http"
	"strconv"

	"github.com/bookshelf/bookshelf/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

// retrieve answers a missing book with a 200 and a null body, unlike update
// and delete which return a 404.
func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errors.WithStack(c.JSON(http.StatusOK, nil))
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		if errors.Is(err, errcodes.NotFound("Book")) {
			return errors.WithStack(c.JSON(http.StatusOK, nil))
		}
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := params.book()
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.UpdateBook(ctx, id, UpdateBookOptions{
		Patch: params.patch(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.bookService.DeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, messageResponse{Message: "Book deleted"}))
}
