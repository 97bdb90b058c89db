package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/bootstrap"
	"github.com/yigit/coursehub/internal/config"
)

// NewTestRouter wires repos into the production router in gin test mode
func NewTestRouter(t *testing.T, repos *repositories.Repositories) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Database.Driver = repos.Driver
	lgr := zerolog.Nop()

	deps, err := bootstrap.BuildDependencies(context.Background(), cfg, repos, lgr)
	require.NoError(t, err)
	return bootstrap.SetupRouter(cfg, deps, lgr)
}

// APIClient issues requests against an in-process handler
type APIClient struct {
	t       *testing.T
	handler http.Handler
}

// NewAPIClient returns a client for handler
func NewAPIClient(t *testing.T, handler http.Handler) *APIClient {
	return &APIClient{t: t, handler: handler}
}

// Do serves req and returns the recorded response
func (c *APIClient) Do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

// Get issues a GET request
func (c *APIClient) Get(path string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(httptest.NewRequest(http.MethodGet, path, nil))
}

// PostJSON issues a POST with body encoded as JSON
func (c *APIClient) PostJSON(path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(c.jsonRequest(http.MethodPost, path, body))
}

// PostForm issues a POST with a form-urlencoded body
func (c *APIClient) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

// Patch issues a PATCH with body encoded as JSON
func (c *APIClient) Patch(path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(c.jsonRequest(http.MethodPatch, path, body))
}

// Delete issues a DELETE request
func (c *APIClient) Delete(path string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(httptest.NewRequest(http.MethodDelete, path, nil))
}

func (c *APIClient) jsonRequest(method, path string, body any) *http.Request {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(c.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON unmarshals a recorded response body into out
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}
