package testutils

import (
	"net/http"

	"github.com/bookshelf/bookshelf/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// deleteAllBooksResponse is the response body for deleting all books.
type deleteAllBooksResponse struct {
	Deleted int `json:"deleted"`
}

// deleteAllBooks deletes all books from the database.
// DELETE /test/books.
func (h *handler) deleteAllBooks(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete books")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, deleteAllBooksResponse{
		Deleted: int(deleted),
	})
}
