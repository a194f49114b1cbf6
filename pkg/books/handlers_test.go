package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/bookshelf/bookshelf/pkg/binder"
	"github.com/bookshelf/bookshelf/pkg/errcodes"
	"github.com/bookshelf/bookshelf/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newBooksTestEcho(t *testing.T, db *bun.DB) *echo.Echo {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	RegisterRoutes(e, db)
	return e
}

func serve(e *echo.Echo, method, path, payload, mime string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if mime != "" {
		req.Header.Set(echo.HeaderContentType, mime)
	}
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

// serveChunked sends a JSON body without a declared length.
func serveChunked(e *echo.Echo, method, path, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.ContentLength = -1
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func TestHandlerList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	rr := serve(e, http.MethodGet, "/books", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	svc := NewService(db)
	require.NoError(t, svc.CreateBook(context.Background(), orwell()))
	require.NoError(t, svc.CreateBook(context.Background(), &models.Book{Autor: pointerutil.String("Huxley")}))

	rr = serve(e, http.MethodGet, "/books", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"id":1,"autor":"Orwell","isbn":1234567890,"editorial":"Secker","paginas":328},
		{"id":2,"autor":"Huxley","isbn":null,"editorial":null,"paginas":null}
	]`, rr.Body.String())
}

func TestHandlerRetrieve(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	book := orwell()
	require.NoError(t, NewService(db).CreateBook(context.Background(), book))

	rr := serve(e, http.MethodGet, "/books/"+strconv.Itoa(book.ID), "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":"Orwell","isbn":1234567890,"editorial":"Secker","paginas":328}`, rr.Body.String())
}

func TestHandlerRetrieve_MissingIsNull(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	for _, path := range []string{"/books/42", "/books/not-a-number"} {
		rr := serve(e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()), path)
	}
}

func TestHandlerCreate_JSON(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	rr := serve(e, http.MethodPost, "/books",
		`{"autor":"Orwell","isbn":1234567890,"editorial":"Secker","paginas":328,"titulo":"1984"}`,
		echo.MIMEApplicationJSON,
	)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":"Orwell","isbn":1234567890,"editorial":"Secker","paginas":328}`, rr.Body.String())
}

func TestHandlerCreate_Form(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	rr := serve(e, http.MethodPost, "/books", "autor=Orwell&paginas=328&extra=ignored", echo.MIMEApplicationForm)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":"Orwell","isbn":null,"editorial":null,"paginas":328}`, rr.Body.String())

	book, err := NewService(db).RetrieveBook(context.Background(), RetrieveBookOptions{ID: pointerutil.Int(1)})
	require.NoError(t, err)
	assert.Equal(t, "Orwell", *book.Autor)
	assert.Equal(t, 328, *book.Paginas)
}

func TestHandlerCreate_FormEmptyValuesStayNull(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	rr := serve(e, http.MethodPost, "/books", "autor=X&isbn=&editorial=&foo=1", echo.MIMEApplicationForm)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":"X","isbn":null,"editorial":null,"paginas":null}`, rr.Body.String())

	book, err := NewService(db).RetrieveBook(context.Background(), RetrieveBookOptions{ID: pointerutil.Int(1)})
	require.NoError(t, err)
	assert.Nil(t, book.Isbn)
	assert.Nil(t, book.Editorial)
}

func TestHandlerCreateAndUpdate_ChunkedBody(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	rr := serveChunked(e, http.MethodPost, "/books", `{"autor":"Orwell","paginas":328}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":"Orwell","isbn":null,"editorial":null,"paginas":328}`, rr.Body.String())

	rr = serveChunked(e, http.MethodPut, "/books/1", `{"paginas":330}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":"Orwell","isbn":null,"editorial":null,"paginas":330}`, rr.Body.String())

	book, err := NewService(db).RetrieveBook(context.Background(), RetrieveBookOptions{ID: pointerutil.Int(1)})
	require.NoError(t, err)
	assert.Equal(t, 330, *book.Paginas)
}

func TestHandlerCreate_EmptyBody(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	rr := serve(e, http.MethodPost, "/books", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":null,"isbn":null,"editorial":null,"paginas":null}`, rr.Body.String())
}

func TestHandlerCreate_BadPayloads(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	rr := serve(e, http.MethodPost, "/books", `{"paginas":"many"}`, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"message":"\"paginas\" should be of type int"}`, rr.Body.String())

	rr = serve(e, http.MethodPost, "/books", `{"autor":`, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Malformed Payload"}`, rr.Body.String())

	rr = serve(e, http.MethodPost, "/books", `<book/>`, echo.MIMEApplicationXML)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)

	books, err := NewService(db).ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestHandlerUpdate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	book := orwell()
	require.NoError(t, NewService(db).CreateBook(context.Background(), book))

	rr := serve(e, http.MethodPut, "/books/1", `{"paginas":330}`, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":"Orwell","isbn":1234567890,"editorial":"Secker","paginas":330}`, rr.Body.String())

	rr = serve(e, http.MethodPut, "/books/1", "editorial=Penguin", echo.MIMEApplicationForm)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"autor":"Orwell","isbn":1234567890,"editorial":"Penguin","paginas":330}`, rr.Body.String())
}

func TestHandlerUpdate_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	for _, path := range []string{"/books/1", "/books/abc"} {
		rr := serve(e, http.MethodPut, path, `{"paginas":330}`, echo.MIMEApplicationJSON)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.JSONEq(t, `{"message":"Book not found"}`, rr.Body.String(), path)
	}
}

func TestHandlerDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)

	require.NoError(t, NewService(db).CreateBook(context.Background(), orwell()))

	rr := serve(e, http.MethodDelete, "/books/1", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Book deleted"}`, rr.Body.String())

	for _, path := range []string{"/books/1", "/books/abc"} {
		rr = serve(e, http.MethodDelete, path, "", "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.JSONEq(t, `{"message":"Book not found"}`, rr.Body.String(), path)
	}
}

func TestHandlerList_StoreFailureIsInternalServerError(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	e := newBooksTestEcho(t, db)
	require.NoError(t, db.Close())

	rr := serve(e, http.MethodGet, "/books", "", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rr.Body.String())
}
