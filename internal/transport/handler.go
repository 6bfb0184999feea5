package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-image-describer/internal/config"
	apperrors "go-image-describer/internal/errors"
	"go-image-describer/internal/logger"
	"go-image-describer/internal/service"
	"go-image-describer/pkg/models"
)

const (
	serviceName    = "Image Description API"
	serviceVersion = "1.0.0"

	// multipartOverhead leaves room for form boundaries and headers on top
	// of the image payload itself.
	multipartOverhead = 1 << 20
)

// NewHandler builds the HTTP surface: POST /describe/ and GET /health/.
func NewHandler(svc service.DescribeService, cfg *config.Config) http.Handler {
	r := gin.New()

	r.Use(
		gin.CustomRecovery(recoveryHandler),
		requestSizeLimiter(cfg.MaxImageSizeBytes()+multipartOverhead),
	)

	r.POST("/describe/", describeImage(svc, cfg))
	r.GET("/health/", healthCheck(cfg))

	return r
}

func describeImage(svc service.DescribeService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing image description request")

		fileHeader, err := c.FormFile("image")
		if err != nil {
			// A body past the size limiter fails multipart parsing before the
			// form field is ever seen; report the size violation, not a
			// missing field.
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
				respondError(c, http.StatusBadRequest,
					fmt.Sprintf("Image file too large. Maximum size: %dMB", cfg.MaxImageSizeMB), err)
				return
			}
			respondError(c, http.StatusBadRequest, "No image file provided", err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to open uploaded image", err)
			return
		}
		defer file.Close()

		// Read at most one byte past the cap so the validator can report the
		// size violation without buffering an arbitrarily large body.
		data, err := io.ReadAll(io.LimitReader(file, cfg.MaxImageSizeBytes()+1))
		if err != nil {
			respondUnexpected(c, start, err)
			return
		}

		response, err := svc.Describe(ctx, data)
		if err != nil {
			respondDescribeError(c, start, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"ip":                 c.ClientIP(),
			"processing_time_ms": time.Since(start).Milliseconds(),
			"model_used":         response.ModelInfo.ModelUsed,
		}).Info("Image description completed successfully")

		c.JSON(http.StatusOK, response)
	}
}

func healthCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Service: serviceName,
			Version: serviceVersion,
			LLMMode: cfg.LLMMode(),
		})
	}
}

// respondDescribeError maps pipeline errors onto the response contract:
// validation and decode failures are 400, remote failures are 503 with the
// already-computed metadata attached, anything else is 500.
func respondDescribeError(c *gin.Context, start time.Time, err error) {
	var remoteFailure *service.RemoteFailure
	if errors.As(err, &remoteFailure) {
		body := models.ErrorResponse{
			Error:    userMessage(err),
			Status:   "error",
			Metadata: remoteFailure.Metadata,
		}
		logError(c, http.StatusServiceUnavailable, err)
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		respondError(c, appErr.StatusCode, appErr.UserMessage(), err)
		return
	}

	respondUnexpected(c, start, err)
}

func respondError(c *gin.Context, code int, message string, err error) {
	logError(c, code, err)
	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:  message,
		Status: "error",
	})
}

// respondUnexpected is the 500 path; it includes the processing time spent
// before the failure.
func respondUnexpected(c *gin.Context, start time.Time, err error) {
	logError(c, http.StatusInternalServerError, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:          "Unexpected error: " + err.Error(),
		Status:         "error",
		ProcessingTime: math.Round(time.Since(start).Seconds()*100) / 100,
	})
}

func recoveryHandler(c *gin.Context, recovered interface{}) {
	logger.WithField("panic", recovered).Error("Request handler panicked")
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:  "Unexpected internal error",
		Status: "error",
	})
}

func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.UserMessage()
	}
	return err.Error()
}

func logError(c *gin.Context, code int, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")
}

// requestSizeLimiter bounds the request body read by the multipart parser.
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
