package status

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter int

func (c counter) Count() int {
	return int(c)
}

func (c counter) ActiveCount() int {
	return int(c)
}

type commands []string

func (c commands) ListCommands() []string {
	return c
}

func TestServer_Health(t *testing.T) {
	s := NewServer(Params{})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestServer_Status(t *testing.T) {
	s := NewServer(Params{
		Version:   "1.2.3",
		Started:   time.Now().Add(-90 * time.Second),
		Sessions:  counter(2),
		Reminders: counter(4),
		Commands:  commands{"!ask", "!help"},
	})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/status", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Version          string   `json:"version"`
		UptimeSeconds    int64    `json:"uptimeSeconds"`
		ActiveSessions   int      `json:"activeSessions"`
		PendingReminders int      `json:"pendingReminders"`
		Commands         []string `json:"commands"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, "1.2.3", got.Version)
	assert.GreaterOrEqual(t, got.UptimeSeconds, int64(90))
	assert.Equal(t, 2, got.ActiveSessions)
	assert.Equal(t, 4, got.PendingReminders)
	assert.Equal(t, []string{"!ask", "!help"}, got.Commands)
}

func TestServer_NotFound(t *testing.T) {
	s := NewServer(Params{})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
