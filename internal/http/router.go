package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vaidya/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
// Con un verifier habilitado, las rutas de pacientes exigen un access token.
func NewRouter(
	logger *zap.Logger,
	verifier *service.TokenVerifier,
	assessmentH *AssessmentHandler,
	catalogH *CatalogHandler,
	moduleH *ModuleHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalogo y cuestionarios son publicos.
	r.GET("/therapies", catalogH.ListTherapies)
	r.GET("/therapies/:id", catalogH.GetTherapy)
	r.GET("/questionnaires/:variant", assessmentH.GetQuestionnaire)

	protected := r.Group("")
	if verifier.Enabled() {
		protected.Use(JWTAuthMiddleware(verifier))
	}

	assessments := protected.Group("/assessments")
	assessments.POST("/general", assessmentH.AssessGeneral)
	assessments.POST("/hairfall", assessmentH.AssessHairFall)
	assessments.GET("/:id", assessmentH.GetAssessment)

	modules := protected.Group("/modules")
	modules.POST("", moduleH.CreateModule)
	modules.GET("/:key", moduleH.GetModule)
	modules.POST("/:key/toggle", moduleH.ToggleInstruction)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
