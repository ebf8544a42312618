package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/services"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	masteryService services.MasteryService
	attemptService services.AttemptService
}

type MasteryResponse struct {
	StudentCode string                 `json:"student_code"`
	Topic       string                 `json:"topic"`
	Areas       []services.AreaMastery `json:"areas"`
}

type ResetResponse struct {
	StudentCode string `json:"student_code"`
	Topic       string `json:"topic"`
	Deleted     int64  `json:"deleted"`
}

func NewStudentHandler(
	masteryService services.MasteryService,
	attemptService services.AttemptService,
	logger utils.Logger,
) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		masteryService: masteryService,
		attemptService: attemptService,
	}
}

// GetMastery returns a student's per-area mastery for a topic
// @Summary Get mastery
// @Description Returns per-area accuracy, level, and recommended next tiers for a topic
// @Tags students
// @Produce json
// @Param code path string true "Student code (Kürzel)"
// @Param topic query string true "Topic code (LF1..LF10)"
// @Success 200 {object} MasteryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{code}/mastery [get]
func (h *StudentHandler) GetMastery(c *gin.Context) {
	code := ParseStringParam(c, "code")
	if code == "" {
		return
	}

	topic := c.Query("topic")
	if topic == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing topic query parameter",
		})
		return
	}

	overview, err := h.masteryService.TopicOverview(c.Request.Context(), code, topic)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MasteryResponse{
		StudentCode: code,
		Topic:       topic,
		Areas:       overview,
	})
}

// ResetTopic deletes a student's attempt history for one topic
// @Summary Reset topic history
// @Description Deletes all of the student's attempts for the topic
// @Tags students
// @Produce json
// @Param code path string true "Student code (Kürzel)"
// @Param topic path string true "Topic code (LF1..LF10)"
// @Success 200 {object} ResetResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{code}/topics/{topic}/attempts [delete]
func (h *StudentHandler) ResetTopic(c *gin.Context) {
	code := ParseStringParam(c, "code")
	if code == "" {
		return
	}
	topic := ParseStringParam(c, "topic")
	if topic == "" {
		return
	}

	h.LogRequest(c, "Resetting topic history", "student", code, "topic", topic)

	deleted, err := h.attemptService.ResetTopic(c.Request.Context(), code, topic)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResetResponse{
		StudentCode: code,
		Topic:       topic,
		Deleted:     deleted,
	})
}
