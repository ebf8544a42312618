package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/services"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
	exportService    services.ExportService
}

func NewTeacherHandler(
	analyticsService services.AnalyticsService,
	exportService services.ExportService,
	logger utils.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
		exportService:    exportService,
	}
}

// GetOverview returns the class overview of a topic
// @Summary Class overview
// @Description Returns every student's per-area standing for the topic
// @Tags teacher
// @Produce json
// @Param topic path string true "Topic code (LF1..LF10)"
// @Success 200 {object} services.ClassOverview
// @Failure 404 {object} ErrorResponse
// @Router /teacher/topics/{topic}/overview [get]
func (h *TeacherHandler) GetOverview(c *gin.Context) {
	topic := ParseStringParam(c, "topic")
	if topic == "" {
		return
	}

	overview, err := h.analyticsService.Overview(c.Request.Context(), topic)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetActivity returns practice activity of a topic
// @Summary Topic activity
// @Description Returns practice volume per skill area and item type
// @Tags teacher
// @Produce json
// @Param topic path string true "Topic code (LF1..LF10)"
// @Success 200 {object} SuccessResponse{data=[]services.ActivityRow}
// @Failure 404 {object} ErrorResponse
// @Router /teacher/topics/{topic}/activity [get]
func (h *TeacherHandler) GetActivity(c *gin.Context) {
	topic := ParseStringParam(c, "topic")
	if topic == "" {
		return
	}

	rows, err := h.analyticsService.Activity(c.Request.Context(), topic)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Activity retrieved",
		Data:    rows,
	})
}

// ListStudents returns every registered student code
// @Summary List students
// @Description Returns all students who have registered a Kürzel
// @Tags teacher
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Student}
// @Router /teacher/students [get]
func (h *TeacherHandler) ListStudents(c *gin.Context) {
	students, err := h.analyticsService.Students(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Students retrieved",
		Data:    students,
	})
}

// ExportTopic downloads the topic report as xlsx
// @Summary Export topic report
// @Description Builds an xlsx workbook with the class overview and activity sheets
// @Tags teacher
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param topic path string true "Topic code (LF1..LF10)"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /teacher/topics/{topic}/export [get]
func (h *TeacherHandler) ExportTopic(c *gin.Context) {
	topic := ParseStringParam(c, "topic")
	if topic == "" {
		return
	}

	h.LogRequest(c, "Exporting topic report", "topic", topic)

	data, err := h.exportService.ExportTopic(c.Request.Context(), topic)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("%s-report-%s.xlsx", topic, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
