package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vaidya/internal/domain"
	"vaidya/internal/service"
)

// AssessmentHandler expone los cuestionarios y sus resultados.
type AssessmentHandler struct {
	logger      *zap.Logger
	assessments *service.AssessmentService
}

func NewAssessmentHandler(logger *zap.Logger, assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{logger: logger, assessments: assessments}
}

// GetQuestionnaire maneja GET /questionnaires/:variant.
func (h *AssessmentHandler) GetQuestionnaire(c *gin.Context) {
	variant := domain.AssessmentVariant(c.Param("variant"))
	questions, ok := service.Questionnaire(variant)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown assessment variant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"variant":   variant,
		"questions": service.DescribeQuestions(questions),
	})
}

// AssessGeneral maneja POST /assessments/general.
func (h *AssessmentHandler) AssessGeneral(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.logger.Warn("invalid general assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.assessments.AssessGeneral(c.Request.Context(), requestUserID(c), raw)
	if err != nil {
		h.writeAssessmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AssessHairFall maneja POST /assessments/hairfall.
func (h *AssessmentHandler) AssessHairFall(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.logger.Warn("invalid hair fall assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.assessments.AssessHairFall(c.Request.Context(), requestUserID(c), raw)
	if err != nil {
		h.writeAssessmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAssessment maneja GET /assessments/:id.
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	record, err := h.assessments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssessmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		case errors.Is(err, service.ErrAssessmentStoreNotConfigured):
			c.JSON(http.StatusNotImplemented, gin.H{"error": "assessment history disabled"})
		default:
			h.logger.Error("get assessment failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch assessment"})
		}
		return
	}

	if claims, ok := GetAuthClaims(c); ok && record.UserID != "" && record.UserID != claims.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": record})
}

func (h *AssessmentHandler) writeAssessmentError(c *gin.Context, err error) {
	var invalid *domain.InvalidIntakeError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "field": invalid.Field})
		return
	}
	h.logger.Error("assessment failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process assessment"})
}

func requestUserID(c *gin.Context) string {
	if claims, ok := GetAuthClaims(c); ok {
		return claims.UserID
	}
	return ""
}
