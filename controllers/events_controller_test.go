package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEventsEmpty(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/events", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCreateRequiresLogin(t *testing.T) {
	r, _, _ := newTestServer(t)

	fields := map[string]string{"title": "Meeting", "eventDate": "2025-06-01"}

	w := doForm(t, r, http.MethodPost, "/api/events", fields, "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := login(t, r)
	w = doForm(t, r, http.MethodPost, "/api/events", fields, "", nil, cookies)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["id"])
}

func TestGateDisabledOpensWrites(t *testing.T) {
	r, cfg, _ := newTestServer(t)
	cfg.AuthDisabled = true

	fields := map[string]string{"title": "Meeting", "eventDate": "2025-06-01"}
	w := doForm(t, r, http.MethodPost, "/api/events", fields, "", nil, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateValidation(t *testing.T) {
	r, _, _ := newTestServer(t)
	cookies := login(t, r)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "missing title", fields: map[string]string{"eventDate": "2025-06-01"}},
		{name: "missing date", fields: map[string]string{"title": "Meeting"}},
		{name: "unparseable date", fields: map[string]string{"title": "Meeting", "eventDate": "not-a-date"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doForm(t, r, http.MethodPost, "/api/events", tc.fields, "", nil, cookies)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeBody(t, w), "message")
		})
	}
}

func TestCreateListRoundTrip(t *testing.T) {
	r, _, _ := newTestServer(t)
	cookies := login(t, r)

	w := doForm(t, r, http.MethodPost, "/api/events", map[string]string{
		"title":     "Meeting",
		"eventDate": "2025-06-01",
		"startTime": "10:00",
	}, "", nil, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/events", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	events := decodeList(t, w)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0]["id"])
	assert.Equal(t, "Meeting", events[0]["title"])
	assert.Equal(t, "2025-06-01", events[0]["eventDate"])
	assert.Equal(t, "10:00", events[0]["startTime"])
	assert.Equal(t, "public", events[0]["eventType"])
	assert.NotEmpty(t, events[0]["createdAt"])
}

func TestListOrdering(t *testing.T) {
	r, _, _ := newTestServer(t)
	cookies := login(t, r)

	for _, date := range []string{"2025-01-02", "2025-01-01"} {
		w := doForm(t, r, http.MethodPost, "/api/events", map[string]string{
			"title":     "on " + date,
			"eventDate": date,
		}, "", nil, cookies)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/events", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	events := decodeList(t, w)
	require.Len(t, events, 2)
	assert.Equal(t, "2025-01-01", events[0]["eventDate"])
	assert.Equal(t, "2025-01-02", events[1]["eventDate"])
}

func TestUpdateEvent(t *testing.T) {
	r, _, _ := newTestServer(t)
	cookies := login(t, r)

	w := doForm(t, r, http.MethodPost, "/api/events", map[string]string{
		"title":     "Before",
		"eventDate": "2025-06-01",
	}, "", nil, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	t.Run("requires login", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/events/"+id, gin.H{"title": "After", "eventDate": "1.7.2025"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("json body overwrites fields", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/events/"+id, gin.H{
			"title":     "After",
			"eventDate": "1.7.2025",
			"id":        "body-supplied-id-is-ignored",
		}, cookies)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/events/"+id, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, id, got["id"])
		assert.Equal(t, "After", got["title"])
		assert.Equal(t, "2025-07-01", got["eventDate"])
	})

	t.Run("missing required field", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/events/"+id, gin.H{"title": "No date"}, cookies)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/events/missing", gin.H{"title": "x", "eventDate": "2025-06-01"}, cookies)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteEventIdempotence(t *testing.T) {
	r, _, _ := newTestServer(t)
	cookies := login(t, r)

	w := doForm(t, r, http.MethodPost, "/api/events", map[string]string{
		"title":     "Doomed",
		"eventDate": "2025-06-01",
	}, "", nil, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodDelete, "/api/events/"+id, nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/events/"+id, nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/events/"+id, nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageLifecycle(t *testing.T) {
	r, _, blob := newTestServer(t)
	cookies := login(t, r)

	w := doForm(t, r, http.MethodPost, "/api/events", map[string]string{
		"title":     "With poster",
		"eventDate": "2025-06-01",
	}, "poster.png", []byte("png bytes"), cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)
	require.Equal(t, 1, blob.Len())

	w = doJSON(t, r, http.MethodGet, "/api/events/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["imageUrl"])

	// Deleting the event reclaims the blob.
	w = doJSON(t, r, http.MethodDelete, "/api/events/"+id, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, blob.Len())

	w = doJSON(t, r, http.MethodGet, "/api/events/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageReplacedOnUpdate(t *testing.T) {
	r, _, blob := newTestServer(t)
	cookies := login(t, r)

	w := doForm(t, r, http.MethodPost, "/api/events", map[string]string{
		"title":     "With poster",
		"eventDate": "2025-06-01",
	}, "old.png", []byte("old"), cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doForm(t, r, http.MethodPut, "/api/events/"+id, map[string]string{
		"title":     "With poster",
		"eventDate": "2025-06-01",
	}, "new.png", []byte("new"), cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// Old blob reclaimed, one image left.
	assert.Equal(t, 1, blob.Len())
}

func TestDeleteEventImage(t *testing.T) {
	r, _, blob := newTestServer(t)
	cookies := login(t, r)

	w := doForm(t, r, http.MethodPost, "/api/events", map[string]string{
		"title":     "With poster",
		"eventDate": "2025-06-01",
	}, "poster.png", []byte("png bytes"), cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodDelete, "/api/events/"+id+"/image", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, blob.Len())

	w = doJSON(t, r, http.MethodGet, "/api/events/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, hasImage := decodeBody(t, w)["imageUrl"]
	assert.False(t, hasImage)

	// No image left: still 200, no blob operation.
	w = doJSON(t, r, http.MethodDelete, "/api/events/"+id+"/image", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/events/missing/image", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEventNotFound(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/events/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeBody(t, w), "message")
}
