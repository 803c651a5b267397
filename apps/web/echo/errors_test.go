package echoweb

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/tests"
)

func Test_appHTTPErrorHandler(t *testing.T) {
	conf := testutil.NewConfig()
	_, translator := testutil.NewValidator()

	tests := []struct {
		name     string
		err      error
		wantCode int
		want     string
		wantLog  bool
	}{
		{name: "busy", err: console.ErrBusy, wantCode: http.StatusConflict, want: console.ErrBusy.Error()},
		{name: "wrapped not open", err: errors.Wrap(console.ErrNotOpen, "grade"), wantCode: http.StatusConflict, want: console.ErrNotOpen.Error()},
		{name: "not found", err: console.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "http error", err: errHttpNotFound, wantCode: http.StatusNotFound, want: "not found"},
		{
			name:     "validation",
			err:      core.NewValidationError(nil, core.FieldError{Field: "phone", Error: "enter a valid phone number (7-15 digits)"}),
			wantCode: http.StatusBadRequest,
			want:     "enter a valid phone number (7-15 digits)",
		},
		{name: "anything else", err: errors.New("boom"), wantCode: http.StatusInternalServerError, want: "Internal Server Error", wantLog: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := new(bytes.Buffer)
			app := echo.New()
			app.Renderer = newRenderer(conf.AppName)
			handler := newAppHTTPErrorHandler(testutil.NewLogger(logs, conf), translator)

			rec := httptest.NewRecorder()
			ctx := app.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			handler(tt.err, ctx)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			if tt.wantLog {
				assert.Contains(t, logs.String(), "boom")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
