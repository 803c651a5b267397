package tests

import (
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/apps/web/echo"
	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/storage/inmem"
	"github.com/trezcool/gradebook/storage/restapi"
	"github.com/trezcool/gradebook/tests"
)

// setup returns a web server talking to `api` through the REST client.
func setup(t *testing.T, api http.Handler) echoweb.Server {
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	conf := testutil.NewConfig()
	conf.API.BaseURL = apiSrv.URL
	validate, translator := testutil.NewValidator()
	client := restapi.NewClient(conf.API.BaseURL, conf.API.Timeout)

	return echoweb.NewServer(echoweb.ServerDeps{
		Conf:       conf,
		Logger:     testutil.NewLogger(ioutil.Discard, conf),
		Translator: translator,
		Workspaces: inmemdb.NewWorkspaceStore(console.Deps{
			Students:   client,
			Grades:     client,
			Attendance: client,
			Validate:   validate,
			Translator: translator,
		}),
		DisableReqLogs: true,
	})
}

// browser replays the session cookie like a browser would.
type browser struct {
	t      *testing.T
	app    http.Handler
	cookie *http.Cookie
}

func newBrowser(t *testing.T, app http.Handler) *browser {
	return &browser{t: t, app: app}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader = http.NoBody
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.app.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "gradebook_session" {
			b.cookie = c
		}
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

type httpTest struct {
	name     string
	method   string
	path     string
	form     url.Values
	wantCode int
	want     []string
	notWant  []string
}

func (b *browser) run(tests []httpTest) {
	for _, tt := range tests {
		b.t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			var rec *httptest.ResponseRecorder
			if method == http.MethodPost {
				rec = b.post(tt.path, tt.form)
			} else {
				rec = b.do(method, tt.path, nil)
			}
			checkResponse(t, tt, rec)
		})
	}
}

func checkResponse(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	require.Equal(t, wantCode, rec.Code, rec.Body.String())
	if wantCode == http.StatusSeeOther {
		assert.Equal(t, "/", rec.Header().Get("Location"))
	}
	body := rec.Body.String()
	for _, s := range tt.want {
		assert.Contains(t, body, s)
	}
	for _, s := range tt.notWant {
		assert.NotContains(t, body, s)
	}
}
