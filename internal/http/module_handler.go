package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vaidya/internal/domain"
	"vaidya/internal/service"
)

// ModuleHandler expone los modulos de terapia por reserva y su progreso.
type ModuleHandler struct {
	logger  *zap.Logger
	modules *service.ModuleService
	tracker *service.ProgressTracker
}

func NewModuleHandler(logger *zap.Logger, modules *service.ModuleService, tracker *service.ProgressTracker) *ModuleHandler {
	return &ModuleHandler{logger: logger, modules: modules, tracker: tracker}
}

// CreateModule maneja POST /modules.
func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req struct {
		TemplateID    string  `json:"templateId" binding:"required"`
		ClinicName    string  `json:"clinicName" binding:"required"`
		ScheduledDate string  `json:"scheduledDate"`
		ScheduledTime string  `json:"scheduledTime"`
		BookingID     *string `json:"bookingId"`
		PatientID     string  `json:"patientId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create module request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	module, created, err := h.modules.Create(c.Request.Context(), service.CreateModuleInput{
		TemplateID:    req.TemplateID,
		ClinicName:    req.ClinicName,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		BookingID:     req.BookingID,
		PatientID:     modulePatientID(c, req.PatientID),
	})
	if err != nil {
		h.writeModuleError(c, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"module": module})
}

// GetModule maneja GET /modules/:key.
func (h *ModuleHandler) GetModule(c *gin.Context) {
	module, err := h.modules.GetForPatient(c.Request.Context(), c.Param("key"), requestUserID(c))
	if err != nil {
		h.writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"module": module})
}

// ToggleInstruction maneja POST /modules/:key/toggle.
func (h *ModuleHandler) ToggleInstruction(c *gin.Context) {
	var req struct {
		SectionID     string `json:"sectionId" binding:"required"`
		InstructionID string `json:"instructionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid toggle request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := h.modules.GetForPatient(c.Request.Context(), c.Param("key"), requestUserID(c)); err != nil {
		h.writeModuleError(c, err)
		return
	}

	module, err := h.tracker.Toggle(c.Request.Context(), c.Param("key"), req.SectionID, req.InstructionID)
	if err != nil {
		h.writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"module": module})
}

func (h *ModuleHandler) writeModuleError(c *gin.Context, err error) {
	var notFound *domain.InstructionNotFoundError
	switch {
	case errors.Is(err, domain.ErrModuleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
	case errors.Is(err, service.ErrUnknownTemplate):
		c.JSON(http.StatusNotFound, gin.H{"error": "therapy template not found"})
	case errors.Is(err, service.ErrModuleInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, domain.ErrModuleVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "module was modified concurrently, reload and retry"})
	case errors.As(err, &notFound):
		h.logger.Warn("instruction not found in module", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         notFound.Error(),
			"sectionId":     notFound.SectionID,
			"instructionId": notFound.InstructionID,
		})
	default:
		h.logger.Error("module request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process module request"})
	}
}

// modulePatientID: el paciente explicito del body (llamadas del servicio de reservas)
// o, si no viene, el usuario del token.
func modulePatientID(c *gin.Context, explicit string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	return requestUserID(c)
}
