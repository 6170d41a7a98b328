package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	config "github.com/mwangikb/event-planner-go/config"
	routes "github.com/mwangikb/event-planner-go/routes"
	store "github.com/mwangikb/event-planner-go/store"
)

const testPassword = "hunter2"

// newTestServer wires the real routes over in-memory stores.
func newTestServer(t *testing.T) (*gin.Engine, *config.Config, *store.MemoryBlobStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	blob := store.NewMemoryBlobStore("events")
	cfg := &config.Config{
		AdminPass:  testPassword,
		SessionKey: "test-session-key",
		Logger:     zerolog.Nop(),
		Events:     store.NewMemoryEventStore(),
		Sessions:   store.NewMemorySessionStore(),
		Blob:       blob,
	}

	r := gin.New()
	routes.SetupRoutes(r, cfg)
	return r, cfg, blob
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, filename string, file []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("eventImage", filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login runs the password flow and returns the session cookies.
func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"password": testPassword}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
