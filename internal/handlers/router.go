package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/config"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/contentbank"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/services"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/utils"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/validator"
)

type HandlerManager struct {
	curriculumHandler *CurriculumHandler
	sessionHandler    *SessionHandler
	studentHandler    *StudentHandler
	teacherHandler    *TeacherHandler
	cfg               *config.Config
	logger            utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	bank *contentbank.Bank,
	v *validator.Validator,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		curriculumHandler: NewCurriculumHandler(bank, logger),
		sessionHandler:    NewSessionHandler(serviceManager.Session(), v, logger),
		studentHandler:    NewStudentHandler(serviceManager.Mastery(), serviceManager.Attempt(), logger),
		teacherHandler:    NewTeacherHandler(serviceManager.Analytics(), serviceManager.Export(), logger),
		cfg:               cfg,
		logger:            logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "gpa-lernapp",
		})
	})

	v1 := router.Group("/api/v1")
	{
		curriculum := v1.Group("/curriculum")
		{
			curriculum.GET("/topics", hm.curriculumHandler.ListTopics)
			curriculum.GET("/topics/:topic/areas", hm.curriculumHandler.ListAreas)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("/diagnostic", hm.sessionHandler.StartDiagnostic)
			sessions.POST("/practice", hm.sessionHandler.StartPractice)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/answers", hm.sessionHandler.SubmitAnswer)
		}

		students := v1.Group("/students")
		{
			students.GET("/:code/mastery", hm.studentHandler.GetMastery)
			students.DELETE("/:code/topics/:topic/attempts", hm.studentHandler.ResetTopic)
		}

		teacher := v1.Group("/teacher")
		teacher.Use(TeacherAuthMiddleware(hm.cfg, hm.logger))
		{
			teacher.GET("/students", hm.teacherHandler.ListStudents)
			teacher.GET("/topics/:topic/overview", hm.teacherHandler.GetOverview)
			teacher.GET("/topics/:topic/activity", hm.teacherHandler.GetActivity)
			teacher.GET("/topics/:topic/export", hm.teacherHandler.ExportTopic)
		}
	}
}
