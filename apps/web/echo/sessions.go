package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/inmem"
)

const (
	sessionCookie = "gradebook_session"
	ctxWorkspace  = "workspace"
	ctxSession    = "session"
)

var errNoWorkspace = errors.New("workspace not found in echo.Context")

// sessionMiddleware attaches the workspace of the requesting browser session to the context,
// starting a new session when the cookie is missing or unknown.
func sessionMiddleware(store *inmemdb.WorkspaceStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			var (
				id string
				ws *console.Workspace
				ok bool
			)
			if cookie, err := ctx.Cookie(sessionCookie); err == nil {
				id = cookie.Value
				ws, ok = store.Get(id)
			}
			if !ok {
				id, ws = store.Create()
				ctx.SetCookie(&http.Cookie{
					Name:     sessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   ctx.IsTLS(),
					SameSite: http.SameSiteLaxMode,
				})
			}
			ws.Touch()

			ctx.Set(ctxWorkspace, ws)
			ctx.Set(ctxSession, logsvc.Session(id))
			return next(ctx)
		}
	}
}

func getContextWorkspace(ctx echo.Context) (*console.Workspace, error) {
	if ws, ok := ctx.Get(ctxWorkspace).(*console.Workspace); ok {
		return ws, nil
	}
	return nil, errNoWorkspace
}

func getContextSession(ctx echo.Context) logsvc.Session {
	sess, _ := ctx.Get(ctxSession).(logsvc.Session)
	return sess
}
