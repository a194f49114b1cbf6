package models

import (
	"testing"

	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
)

func TestBookApply(t *testing.T) {
	t.Parallel()

	t.Run("only changes the fields in the patch", func(tt *testing.T) {
		book := &Book{
			ID:        1,
			Autor:     pointerutil.String("Orwell"),
			Isbn:      pointerutil.Int(1234567890),
			Editorial: pointerutil.String("Secker"),
			Paginas:   pointerutil.Int(328),
		}

		columns := book.Apply(BookPatch{Paginas: pointerutil.Int(330)})

		assert.Equal(tt, []string{"paginas"}, columns)
		assert.Equal(tt, 1, book.ID)
		assert.Equal(tt, "Orwell", *book.Autor)
		assert.Equal(tt, 1234567890, *book.Isbn)
		assert.Equal(tt, "Secker", *book.Editorial)
		assert.Equal(tt, 330, *book.Paginas)
	})

	t.Run("fills in fields that were null", func(tt *testing.T) {
		book := &Book{ID: 2}

		columns := book.Apply(BookPatch{
			Autor:     pointerutil.String("Huxley"),
			Editorial: pointerutil.String("Chatto & Windus"),
		})

		assert.Equal(tt, []string{"autor", "editorial"}, columns)
		assert.Equal(tt, "Huxley", *book.Autor)
		assert.Equal(tt, "Chatto & Windus", *book.Editorial)
		assert.Nil(tt, book.Isbn)
		assert.Nil(tt, book.Paginas)
	})

	t.Run("skips values that didn't change", func(tt *testing.T) {
		book := &Book{ID: 3, Autor: pointerutil.String("Orwell"), Isbn: pointerutil.Int(42)}

		columns := book.Apply(BookPatch{Autor: pointerutil.String("Orwell"), Isbn: pointerutil.Int(43)})

		assert.Equal(tt, []string{"isbn"}, columns)
		assert.Equal(tt, 43, *book.Isbn)
	})

	t.Run("empty patch changes nothing", func(tt *testing.T) {
		book := &Book{ID: 4, Paginas: pointerutil.Int(10)}

		columns := book.Apply(BookPatch{})

		assert.Empty(tt, columns)
		assert.Equal(tt, 10, *book.Paginas)
	})
}
