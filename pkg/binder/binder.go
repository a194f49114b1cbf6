package binder

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/bookshelf/bookshelf/pkg/errcodes"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
)

var unknownFieldsRE = regexp.MustCompile(`^json: unknown field "(.*)"$`)

// Context keys a route can set to relax the binder for its payloads.
const (
	DisallowEmptyBodyKey     = "disallow_empty_body"
	DisallowUnknownFieldsKey = "disallow_unknown_fields"
)

// Binder is a custom struct that implements the Echo Binder interface. It
// decodes JSON and form bodies, or the query string of body-less requests, and
// turns decoding failures into typed errcodes.
type Binder struct {
	queryDecoder *schema.Decoder
	formDecoder  *schema.Decoder
}

// New initializes a new Binder instance.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	formDecoder := schema.NewDecoder()
	formDecoder.SetAliasTag("form")

	return &Binder{queryDecoder, formDecoder}, nil
}

// Bind decodes the request into the given struct.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	log := logger.FromEchoContext(c)

	disallowEmptyBody := true
	if disallow, ok := c.Get(DisallowEmptyBodyKey).(bool); ok {
		disallowEmptyBody = disallow
	}
	disallowUnknownFields := true
	if disallow, ok := c.Get(DisallowUnknownFieldsKey).(bool); ok {
		disallowUnknownFields = disallow
	}

	// ContentLength is -1 for chunked bodies of unknown length.
	if req.ContentLength == 0 {
		if req.Method == http.MethodGet || req.Method == http.MethodDelete {
			return b.decodeQuery(i, c.QueryParams(), b.queryDecoder, !disallowUnknownFields)
		}
		if disallowEmptyBody {
			return errcodes.EmptyRequestBody()
		}
		return nil
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		dec := json.NewDecoder(req.Body)
		if disallowUnknownFields {
			dec.DisallowUnknownFields()
		}
		defer req.Body.Close()
		if err := dec.Decode(i); err != nil {
			// a chunked body can still turn out to be empty
			if errors.Is(err, io.EOF) {
				if disallowEmptyBody {
					return errcodes.EmptyRequestBody()
				}
				return nil
			}

			if matches := unknownFieldsRE.FindAllStringSubmatch(err.Error(), -1); len(matches) > 0 && len(matches[0]) > 1 {
				return errcodes.UnknownParameter(matches[0][1])
			}

			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				// an empty field means the document itself has the wrong shape
				if typeErr.Field == "" {
					return errcodes.MalformedPayload()
				}
				return errcodes.ValidationTypeError(formatUnmarshalTypeError(typeErr))
			}

			log.Err(err).Debug("json decode error")

			return errcodes.MalformedPayload()
		}
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		params, err := c.FormParams()
		if err != nil {
			return errcodes.MalformedPayload()
		}
		return b.decodeQuery(i, params, b.formDecoder, !disallowUnknownFields)
	default:
		return errcodes.UnsupportedMediaType()
	}

	return nil
}

func (b *Binder) decodeQuery(i interface{}, params url.Values, decoder *schema.Decoder, ignoreUnknown bool) error {
	err := decoder.Decode(i, withoutEmptyValues(params))
	if err == nil {
		return nil
	}

	errs, ok := err.(schema.MultiError)
	if !ok {
		return errors.WithStack(err)
	}

	for _, err := range errs {
		switch err := err.(type) {
		case schema.ConversionError:
			return errcodes.ValidationTypeError(formatSchemaConversionError(err))
		case schema.UnknownKeyError:
			if ignoreUnknown {
				continue
			}
			return errcodes.UnknownParameter(err.Key)
		default:
			return errors.WithStack(err)
		}
	}
	return nil
}

// withoutEmptyValues drops blank values so that a field submitted empty stays
// unset instead of being decoded as its zero value.
func withoutEmptyValues(params url.Values) url.Values {
	out := make(url.Values, len(params))
	for key, values := range params {
		for _, v := range values {
			if v != "" {
				out[key] = append(out[key], v)
			}
		}
	}
	return out
}
