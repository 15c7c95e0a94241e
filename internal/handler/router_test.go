package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thoughts-api/internal/middleware"
	"thoughts-api/internal/service"
	"thoughts-api/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Index(t *testing.T) {
	router := newTestRouter(t, service.NewThoughtService(testutil.NewMockThoughtRepository()), true)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

	testutil.AssertStatusCode(t, w, http.StatusOK)
	routes := testutil.DecodeJSON[[]RouteDescriptor](t, w)
	assert.Equal(t, []RouteDescriptor{
		{Path: "/", Methods: []string{"GET"}},
		{Path: "/thoughts", Methods: []string{"GET", "POST"}},
		{Path: "/thoughts/{id}/like", Methods: []string{"PATCH"}},
	}, routes)
}

func TestDescribeRoutes_HidesPrefixes(t *testing.T) {
	r := chi.NewRouter()
	noop := func(w http.ResponseWriter, r *http.Request) {}
	r.Get("/b", noop)
	r.Delete("/b", noop)
	r.Get("/a", noop)
	r.Get("/internal/debug", noop)

	routes, err := DescribeRoutes(r, "/internal")
	require.NoError(t, err)
	assert.Equal(t, []RouteDescriptor{
		{Path: "/a", Methods: []string{"GET"}},
		{Path: "/b", Methods: []string{"DELETE", "GET"}},
	}, routes)
}

func TestRouter_OperationalRoutes(t *testing.T) {
	router := newTestRouter(t, service.NewThoughtService(testutil.NewMockThoughtRepository()), true)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	testutil.AssertStatusCode(t, w, http.StatusOK)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	testutil.AssertStatusCode(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `"driver":"mongo"`)

	// generate a sample so the family is exported
	serve(router, httptest.NewRequest(http.MethodGet, "/thoughts", nil))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	testutil.AssertStatusCode(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t, service.NewThoughtService(testutil.NewMockThoughtRepository()), true)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/thought", nil))

	testutil.AssertStatusCode(t, w, http.StatusNotFound)
	detail := testutil.DecodeError(t, w)
	assert.Equal(t, NotFoundError, detail.Name)
}

func TestRouter_RequestIDHeaderIsAccepted(t *testing.T) {
	router := newTestRouter(t, service.NewThoughtService(testutil.NewMockThoughtRepository()), true)

	req := httptest.NewRequest(http.MethodGet, "/thoughts", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := serve(router, req)

	testutil.AssertStatusCode(t, w, http.StatusOK)
}

func TestRouter_CORS(t *testing.T) {
	router := NewRouter(RouterConfig{
		Thoughts:       service.NewThoughtService(testutil.NewMockThoughtRepository()),
		Store:          testutil.NewMockThoughtRepository(),
		Driver:         "mongo",
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/thoughts/abc/like", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := serve(router, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimitsThoughtsOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := NewRouter(RouterConfig{
		Thoughts: service.NewThoughtService(testutil.NewMockThoughtRepository()),
		Store:    testutil.NewMockThoughtRepository(),
		Driver:   "mongo",
		Limiter:  middleware.NewRateLimiter(ctx, 0.001, 2),
	})

	get := func(target string) int {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.RemoteAddr = "203.0.113.9:4000"
		return serve(router, req).Code
	}

	assert.Equal(t, http.StatusOK, get("/thoughts"))
	assert.Equal(t, http.StatusOK, get("/thoughts"))
	assert.Equal(t, http.StatusTooManyRequests, get("/thoughts"))

	assert.Equal(t, http.StatusOK, get("/health"))
	assert.Equal(t, http.StatusOK, get("/"))
}

func TestRouter_CreateThenLikeScenario(t *testing.T) {
	repo := testutil.NewMockThoughtRepository()
	router := newTestRouter(t, service.NewThoughtService(repo), true)

	w := serve(router, testutil.NewJSONRequest(t, http.MethodPost, "/thoughts", map[string]string{"message": "Hello world"}))
	testutil.AssertStatusCode(t, w, http.StatusCreated)
	created := testutil.DecodeJSON[testutil.Envelope[struct {
		ID     string `json:"id"`
		Hearts int    `json:"hearts"`
	}]](t, w)
	require.NotEmpty(t, created.Response.ID)
	assert.Equal(t, 0, created.Response.Hearts)

	w = serve(router, httptest.NewRequest(http.MethodPatch, "/thoughts/"+created.Response.ID+"/like", nil))
	testutil.AssertStatusCode(t, w, http.StatusOK)
	assert.True(t, strings.HasSuffix(testutil.DecodeJSON[testutil.Envelope[string]](t, w).Response, "(1 hearts)"))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/thoughts", nil))
	testutil.AssertStatusCode(t, w, http.StatusOK)
	feed := testutil.DecodeJSON[testutil.Envelope[[]struct {
		ID     string `json:"id"`
		Hearts int    `json:"hearts"`
	}]](t, w)
	require.Len(t, feed.Response, 1)
	assert.Equal(t, created.Response.ID, feed.Response[0].ID)
	assert.Equal(t, 1, feed.Response[0].Hearts)
}
