package handler

import (
	"crypto/subtle"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"bayes-go/internal/controller"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const RequestIDHeader = "X-Request-ID"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simplebayes",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "simplebayes",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// RouterOptions configures the optional middleware and routes
type RouterOptions struct {
	AuthToken    string
	MaxBodyBytes int64
	RateLimit    float64 // per client, 0 disables
	RateBurst    int
	MCPHandler   http.Handler // mounted at /mcp when set
}

func SetupRouter(classifierController *controller.ClassifierController, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(CustomRecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(MetricsMiddleware())
	if opts.RateLimit > 0 {
		router.Use(RateLimitMiddleware(opts.RateLimit, opts.RateBurst, logger))
	}

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Probes and metrics stay reachable without a token
	router.GET("/healthz", classifierController.Healthz)
	router.GET("/readyz", classifierController.Readyz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/")
	api.Use(AuthMiddleware(opts.AuthToken, logger))
	api.Use(BodyLimitMiddleware(opts.MaxBodyBytes))
	{
		api.GET("/info", classifierController.Info)
		api.POST("/train/:category", classifierController.Train)
		api.POST("/untrain/:category", classifierController.Untrain)
		api.POST("/score", classifierController.Score)
		api.POST("/classify", classifierController.Classify)
		api.POST("/flush", classifierController.Flush)
		api.GET("/tally/:category", classifierController.Tally)

		if opts.MCPHandler != nil {
			api.Any("/mcp", gin.WrapH(opts.MCPHandler))
		}
	}

	return router
}

func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(RequestIDHeader)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func CustomRecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequestIDMiddleware propagates X-Request-ID, generating one when the client sent none
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// AuthMiddleware requires "Authorization: Bearer <token>" when token is non-empty
func AuthMiddleware(token string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), []byte(token)) != 1 {
			logger.Warn("Unauthorized request",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// BodyLimitMiddleware caps request bodies at limit bytes. Reads past the limit fail
// with *http.MaxBytesError.
func BodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			if c.Request.ContentLength > limit {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// RateLimitMiddleware applies a token bucket per client IP
func RateLimitMiddleware(limit float64, burst int, logger *zap.Logger) gin.HandlerFunc {
	if burst < 1 {
		burst = 1
	}
	limiters := newClientLimiters(rate.Limit(limit), burst)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiters.get(ip).Allow() {
			logger.Warn("Rate limit exceeded", zap.String("client_ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}

type clientLimiters struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
}

func newClientLimiters(limit rate.Limit, burst int) *clientLimiters {
	return &clientLimiters{
		limit:       limit,
		burst:       burst,
		limiters:    make(map[string]*rate.Limiter),
		lastCleanup: time.Now(),
	}
}

func (l *clientLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Forget idle clients once an hour
	if time.Since(l.lastCleanup) > time.Hour {
		l.limiters = make(map[string]*rate.Limiter)
		l.lastCleanup = time.Now()
	}

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}
