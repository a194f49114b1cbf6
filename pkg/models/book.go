package models

import (
	"github.com/uptrace/bun"
)

// Book is the only record the service stores. Every column but the ID is
// optional and nil fields are stored as NULL.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b" tstype:"-"`

	ID        int     `bun:",pk,nullzero" json:"id"`
	Autor     *string `json:"autor"`
	Isbn      *int    `json:"isbn"`
	Editorial *string `json:"editorial"`
	Paginas   *int    `json:"paginas"`
}

// BookPatch holds a partial update. Nil fields are left alone.
type BookPatch struct {
	Autor     *string
	Isbn      *int
	Editorial *string
	Paginas   *int
}

// Apply merges the patch into the book and returns the names of the columns
// whose values changed.
func (b *Book) Apply(patch BookPatch) []string {
	columns := []string{}

	if patch.Autor != nil && !ptrEqual(b.Autor, patch.Autor) {
		b.Autor = patch.Autor
		columns = append(columns, "autor")
	}
	if patch.Isbn != nil && !ptrEqual(b.Isbn, patch.Isbn) {
		b.Isbn = patch.Isbn
		columns = append(columns, "isbn")
	}
	if patch.Editorial != nil && !ptrEqual(b.Editorial, patch.Editorial) {
		b.Editorial = patch.Editorial
		columns = append(columns, "editorial")
	}
	if patch.Paginas != nil && !ptrEqual(b.Paginas, patch.Paginas) {
		b.Paginas = patch.Paginas
		columns = append(columns, "paginas")
	}

	return columns
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
