package books

import "github.com/bookshelf/bookshelf/pkg/models"

type CreateBookPayload struct {
	Autor     *string `json:"autor,omitempty" form:"autor"`
	Isbn      *int    `json:"isbn,omitempty" form:"isbn"`
	Editorial *string `json:"editorial,omitempty" form:"editorial"`
	Paginas   *int    `json:"paginas,omitempty" form:"paginas"`
}

func (p CreateBookPayload) book() *models.Book {
	return &models.Book{
		Autor:     p.Autor,
		Isbn:      p.Isbn,
		Editorial: p.Editorial,
		Paginas:   p.Paginas,
	}
}

type UpdateBookPayload struct {
	Autor     *string `json:"autor,omitempty" form:"autor"`
	Isbn      *int    `json:"isbn,omitempty" form:"isbn"`
	Editorial *string `json:"editorial,omitempty" form:"editorial"`
	Paginas   *int    `json:"paginas,omitempty" form:"paginas"`
}

func (p UpdateBookPayload) patch() models.BookPatch {
	return models.BookPatch{
		Autor:     p.Autor,
		Isbn:      p.Isbn,
		Editorial: p.Editorial,
		Paginas:   p.Paginas,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}
