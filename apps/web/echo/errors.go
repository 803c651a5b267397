package echoweb

import (
	"fmt"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/console"
)

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var (
			code    int
			message string
		)

		switch cause := errors.Cause(err); cause {
		case console.ErrNotFound:
			code = http.StatusNotFound
			message = cause.Error()
		case console.ErrBusy, console.ErrNotOpen, console.ErrNotLoaded:
			code = http.StatusConflict
			message = cause.Error()
		default:
			switch origErr := cause.(type) {
			case *echo.HTTPError:
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = fmt.Sprintf("%v", origErr.Message)
			case validator.ValidationErrors:
				msgs := make([]string, 0, len(origErr))
				for _, vErr := range origErr {
					msgs = append(msgs, vErr.Field()+": "+vErr.Translate(translator))
				}
				code = http.StatusBadRequest
				message = strings.Join(msgs, "; ")
			case *core.ValidationError:
				code = http.StatusBadRequest
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				message = http.StatusText(code)
				logger.Error(message, errors.Wrap(err, message), ctx.Request(), getContextSession(ctx))
			}
		}

		if ctx.Echo().Debug && code >= http.StatusInternalServerError {
			message = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.Render(code, errorTemplate, errorData{Code: code, Title: http.StatusText(code), Message: message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
