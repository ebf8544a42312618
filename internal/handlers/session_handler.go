package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/services"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/utils"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/validator"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
	validator      *validator.Validator
}

type StartDiagnosticRequest struct {
	Student string `json:"student" validate:"required,min=2,max=40"`
	Topic   string `json:"topic" validate:"required,topic_code"`
	Count   int    `json:"count" validate:"omitempty,min=1,max=20"`
}

type StartPracticeRequest struct {
	Student string `json:"student" validate:"required,min=2,max=40"`
	Topic   string `json:"topic" validate:"required,topic_code"`
	Area    string `json:"area"`
	Level   *int   `json:"level" validate:"omitempty,min=1,max=3"`
	Count   int    `json:"count" validate:"omitempty,min=1,max=20"`
}

type SubmitAnswerRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Response json.RawMessage `json:"response" validate:"required"`
}

func NewSessionHandler(
	sessionService services.SessionService,
	v *validator.Validator,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
		validator:      v,
	}
}

// StartDiagnostic opens a diagnostic session
// @Summary Start diagnostic session
// @Description Opens a session of items stratified across the topic's skill areas
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body StartDiagnosticRequest true "Session parameters"
// @Success 201 {object} services.SessionView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/diagnostic [post]
func (h *SessionHandler) StartDiagnostic(c *gin.Context) {
	var req StartDiagnosticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Starting diagnostic session", "student", req.Student, "topic", req.Topic)

	view, err := h.sessionService.StartDiagnostic(c.Request.Context(), req.Student, req.Topic, req.Count)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// StartPractice opens an adaptive practice session
// @Summary Start practice session
// @Description Opens an adaptive session targeting the student's mastery level
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body StartPracticeRequest true "Session parameters"
// @Success 201 {object} services.SessionView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/practice [post]
func (h *SessionHandler) StartPractice(c *gin.Context) {
	var req StartPracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Starting practice session",
		"student", req.Student, "topic", req.Topic, "area", req.Area)

	var target *models.DifficultyTier
	if req.Level != nil {
		tier := models.DifficultyTier(*req.Level)
		target = &tier
	}

	view, err := h.sessionService.StartPractice(c.Request.Context(), req.Student, req.Topic, req.Area, target, req.Count)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// GetSession returns the current state of a session
// @Summary Get session
// @Description Returns session progress and the current item
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionView
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := ParseStringParam(c, "id")
	if sessionID == "" {
		return
	}

	view, err := h.sessionService.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SubmitAnswer grades the current item and advances the session
// @Summary Submit answer
// @Description Grades an answer against the session's current item, records the attempt, and advances the session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} services.SubmitResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/answers [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	sessionID := ParseStringParam(c, "id")
	if sessionID == "" {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Submitting answer", "session_id", sessionID, "item_id", req.ItemID)

	result, err := h.sessionService.SubmitAnswer(c.Request.Context(), sessionID, req.ItemID, req.Response)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
