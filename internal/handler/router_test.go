package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bayes-go/internal/controller"
	"bayes-go/internal/service"
	"bayes-go/internal/service/tokenizer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRouter(opts RouterOptions) (*gin.Engine, *service.Classifier) {
	classifier := service.NewClassifier(tokenizer.Func(strings.Fields), zap.NewNop())
	cc := controller.NewClassifierController(classifier, service.NewReadiness(), zap.NewNop())
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	return SetupRouter(cc, opts, zap.NewNop()), classifier
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_Routes(t *testing.T) {
	router, classifier := setupTestRouter(RouterOptions{})

	w := serve(router, httptest.NewRequest(http.MethodPost, "/train/spam", strings.NewReader("cheap pills")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), classifier.Tally("spam"))

	w = serve(router, httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader("cheap")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"category":"spam","score":1}`, w.Body.String())

	w = serve(router, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_MethodNotAllowed(t *testing.T) {
	router, _ := setupTestRouter(RouterOptions{})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/train/spam", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodPost, "/info", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRouter_Auth(t *testing.T) {
	router, classifier := setupTestRouter(RouterOptions{AuthToken: "secret"})

	w := serve(router, httptest.NewRequest(http.MethodPost, "/train/spam", strings.NewReader("x")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/train/spam", strings.NewReader("x"))
	req.Header.Set("Authorization", "Bearer wrong")
	w = serve(router, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, classifier.Categories())

	req = httptest.NewRequest(http.MethodPost, "/train/spam", strings.NewReader("x"))
	req.Header.Set("Authorization", "Bearer secret")
	w = serve(router, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), classifier.Tally("spam"))

	// probes are open
	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		w = serve(router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSetupRouter_BodyLimit(t *testing.T) {
	router, classifier := setupTestRouter(RouterOptions{MaxBodyBytes: 8})

	w := serve(router, httptest.NewRequest(http.MethodPost, "/train/spam", strings.NewReader("far more than eight bytes")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// unknown length still hits the reader limit
	req := httptest.NewRequest(http.MethodPost, "/train/spam", strings.NewReader("far more than eight bytes"))
	req.ContentLength = -1
	w = serve(router, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, classifier.Categories())

	w = serve(router, httptest.NewRequest(http.MethodPost, "/train/spam", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_RateLimit(t *testing.T) {
	router, _ := setupTestRouter(RouterOptions{RateLimit: 0.001, RateBurst: 2})

	for i := 0; i < 2; i++ {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/info", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(router, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// other clients have their own bucket
	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	w = serve(router, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_RequestID(t *testing.T) {
	router, _ := setupTestRouter(RouterOptions{})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(router, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestSetupRouter_Metrics(t *testing.T) {
	router, _ := setupTestRouter(RouterOptions{})
	serve(router, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("x")))

	w := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `simplebayes_http_requests_total{method="POST",route="/score",status="200"}`)
	assert.Contains(t, w.Body.String(), "simplebayes_classifier_operations_total")
}

func TestSetupRouter_MCPMount(t *testing.T) {
	called := false
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	})
	router, _ := setupTestRouter(RouterOptions{MCPHandler: mcpHandler})

	w := serve(router, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}")))

	assert.True(t, called)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestCustomRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CustomRecoveryMiddleware(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
