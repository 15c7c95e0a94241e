//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testClient = &http.Client{Timeout: 30 * time.Second}

// envelope is the {success, response} body of every /thoughts endpoint
type envelope[T any] struct {
	Success  bool `json:"success"`
	Response T    `json:"response"`
}

type thoughtResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Hearts    int       `json:"hearts"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// do sends a request with an optional JSON body and returns status and raw body
func do(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(testContext, method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := testClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}

// createThought posts message and requires a 201
func createThought(t *testing.T, b *backend, message string) thoughtResponse {
	t.Helper()
	status, raw := do(t, http.MethodPost, b.baseURL+"/thoughts", map[string]string{"message": message})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)

	env := decode[envelope[thoughtResponse]](t, raw)
	require.True(t, env.Success)
	return env.Response
}

func listThoughts(t *testing.T, b *backend, query string) []thoughtResponse {
	t.Helper()
	status, raw := do(t, http.MethodGet, b.baseURL+"/thoughts"+query, nil)
	require.Equal(t, http.StatusOK, status, "body: %s", raw)

	env := decode[envelope[[]thoughtResponse]](t, raw)
	require.True(t, env.Success)
	return env.Response
}
