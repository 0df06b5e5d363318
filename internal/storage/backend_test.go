package storage

import (
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	fakeBasePath   = "/pomodoro"
	fakeCookieName = "session"
)

// fakeBackend mimics the pomodoro backend contract: one document per
// session cookie, 404 until the first update.
type fakeBackend struct {
	mu        sync.Mutex
	initial   []byte
	documents map[string][]byte
	last      []byte
	returning int
}

func newFakeBackend(initial []byte) *fakeBackend {
	return &fakeBackend{initial: initial, documents: make(map[string][]byte)}
}

func (backend *fakeBackend) handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	group := e.Group(fakeBasePath, backend.withSession)
	group.GET(statePath, backend.getState)
	group.POST(updatePath, backend.postUpdate)
	return e
}

func (backend *fakeBackend) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(fakeCookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				backend.mu.Lock()
				backend.returning++
				backend.mu.Unlock()
				c.Set(fakeCookieName, cookie.Value)
				return next(c)
			}
		}
		id := uuid.NewString()
		c.SetCookie(&http.Cookie{Name: fakeCookieName, Value: id, Path: fakeBasePath, HttpOnly: true})
		c.Set(fakeCookieName, id)
		return next(c)
	}
}

func (backend *fakeBackend) getState(c echo.Context) error {
	backend.mu.Lock()
	document, ok := backend.documents[c.Get(fakeCookieName).(string)]
	if !ok {
		document = backend.initial
	}
	backend.mu.Unlock()

	if document == nil {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSONBlob(http.StatusOK, document)
}

func (backend *fakeBackend) postUpdate(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	backend.mu.Lock()
	backend.documents[c.Get(fakeCookieName).(string)] = body
	backend.last = body
	backend.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (backend *fakeBackend) sessions() int {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	return len(backend.documents)
}
