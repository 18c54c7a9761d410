package controller

import (
	"errors"
	"net/http"
	"strings"

	"bayes-go/internal/model/bayes"
	"bayes-go/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClassifierController serves the classifier over HTTP
type ClassifierController struct {
	classifier *service.Classifier
	readiness  *service.Readiness
	logger     *zap.Logger
}

// NewClassifierController creates a new classifier controller
func NewClassifierController(classifier *service.Classifier, readiness *service.Readiness, logger *zap.Logger) *ClassifierController {
	return &ClassifierController{
		classifier: classifier,
		readiness:  readiness,
		logger:     logger,
	}
}

// InfoResponse lists every trained category
type InfoResponse struct {
	Categories map[string]bayes.CategorySummary `json:"categories"`
}

// MutationResponse is returned by train, untrain and flush
type MutationResponse struct {
	Success    bool                             `json:"success"`
	Categories map[string]bayes.CategorySummary `json:"categories"`
}

// TallyResponse is returned by GET /tally/:category
type TallyResponse struct {
	Category string `json:"category"`
	Tally    int64  `json:"tally"`
}

// Info handles GET /info
func (cc *ClassifierController) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{Categories: cc.classifier.Summaries()})
}

// Train handles POST /train/:category
func (cc *ClassifierController) Train(c *gin.Context) {
	category, ok := cc.category(c)
	if !ok {
		return
	}
	text, ok := cc.body(c)
	if !ok {
		return
	}

	if err := cc.classifier.Train(category, text); err != nil {
		cc.fail(c, err)
		return
	}

	cc.logger.Info("Trained category", zap.String("category", category), zap.Int("bytes", len(text)))
	c.JSON(http.StatusOK, MutationResponse{Success: true, Categories: cc.classifier.Summaries()})
}

// Untrain handles POST /untrain/:category
func (cc *ClassifierController) Untrain(c *gin.Context) {
	category, ok := cc.category(c)
	if !ok {
		return
	}
	text, ok := cc.body(c)
	if !ok {
		return
	}

	if err := cc.classifier.Untrain(category, text); err != nil {
		cc.fail(c, err)
		return
	}

	cc.logger.Info("Untrained category", zap.String("category", category), zap.Int("bytes", len(text)))
	c.JSON(http.StatusOK, MutationResponse{Success: true, Categories: cc.classifier.Summaries()})
}

// Score handles POST /score
func (cc *ClassifierController) Score(c *gin.Context) {
	text, ok := cc.body(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cc.classifier.Score(text))
}

// Classify handles POST /classify. Category is "" when nothing matched.
func (cc *ClassifierController) Classify(c *gin.Context) {
	text, ok := cc.body(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cc.classifier.ClassifyResult(text))
}

// Flush handles POST /flush
func (cc *ClassifierController) Flush(c *gin.Context) {
	if _, ok := cc.body(c); !ok {
		return
	}

	cc.classifier.Flush()
	c.JSON(http.StatusOK, MutationResponse{Success: true, Categories: cc.classifier.Summaries()})
}

// Tally handles GET /tally/:category
func (cc *ClassifierController) Tally(c *gin.Context) {
	category, ok := cc.category(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, TallyResponse{Category: category, Tally: cc.classifier.Tally(category)})
}

// Healthz handles GET /healthz
func (cc *ClassifierController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz handles GET /readyz
func (cc *ClassifierController) Readyz(c *gin.Context) {
	if cc.readiness != nil && !cc.readiness.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (cc *ClassifierController) category(c *gin.Context) (string, bool) {
	category, err := service.NormalizeCategory(c.Param("category"))
	if err != nil {
		cc.fail(c, err)
		return "", false
	}
	return category, true
}

// body reads the raw request body as UTF-8, dropping invalid bytes
func (cc *ClassifierController) body(c *gin.Context) (string, bool) {
	data, err := c.GetRawData()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			err = errors.Join(service.ErrPayloadTooLarge, err)
		}
		cc.fail(c, err)
		return "", false
	}
	return strings.ToValidUTF8(string(data), ""), true
}

func (cc *ClassifierController) fail(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		cc.logger.Error(message, zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		cc.logger.Warn(message, zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidCategory):
		return http.StatusUnprocessableEntity, "Invalid category"
	case errors.Is(err, service.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "Payload too large"
	default:
		return http.StatusBadRequest, "Failed to read request"
	}
}
