package view

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	for _, name := range pageNames {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, name, nil, c), name)
		assert.Contains(t, buf.String(), "<nav>", name)
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	assert.Error(t, r.Render(&bytes.Buffer{}, "missing", nil, nil))
}

func TestRenderer_SecretsEscapeHTML(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/secrets", nil), httptest.NewRecorder())
	var buf bytes.Buffer
	err = r.Render(&buf, PageSecrets, &Page{Secrets: []string{"<script>alert(1)</script>", "plain"}}, c)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.Contains(t, buf.String(), "plain")
}

func TestRenderer_NavigationFollowsSession(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	var anon bytes.Buffer
	require.NoError(t, r.Render(&anon, PageHome, nil, c))
	assert.Contains(t, anon.String(), `href="/login"`)
	assert.NotContains(t, anon.String(), `href="/logout"`)

	deliverycontext.SetSession(c, &entity.SessionSnapshot{UserID: uuid.New(), Username: "alice"})
	var authed bytes.Buffer
	require.NoError(t, r.Render(&authed, PageHome, nil, c))
	assert.Contains(t, authed.String(), `href="/logout"`)
	assert.Contains(t, authed.String(), "alice")
}

func TestRenderer_LoginKeepsUsername(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), httptest.NewRecorder())
	var buf bytes.Buffer
	page := &Page{FormError: "Invalid username or password", FormData: map[string]string{"username": "bob"}}
	require.NoError(t, r.Render(&buf, PageLogin, page, c))

	assert.Contains(t, buf.String(), "Invalid username or password")
	assert.Contains(t, buf.String(), `value="bob"`)
}
