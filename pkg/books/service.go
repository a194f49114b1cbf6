package books

import (
	"context"
	"database/sql"

	"github.com/bookshelf/bookshelf/pkg/errcodes"
	"github.com/bookshelf/bookshelf/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *int
}

type UpdateBookOptions struct {
	Patch models.BookPatch
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts the book and fills in the ID the store assigned.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// ListBooks returns every book in primary key order.
func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// UpdateBook applies the patch to the book with the given ID and writes only
// the columns that changed.
func (svc *Service) UpdateBook(ctx context.Context, id int, opts UpdateBookOptions) (*models.Book, error) {
	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	columns := book.Apply(opts.Patch)
	if len(columns) == 0 {
		return book, nil
	}

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// The row can disappear between the lookup and the write.
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if n == 0 {
		return nil, errcodes.NotFound("Book")
	}

	return book, nil
}

func (svc *Service) DeleteBook(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound("Book")
	}

	return nil
}
