package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/contentbank"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/utils"
)

type CurriculumHandler struct {
	BaseHandler
	bank *contentbank.Bank
}

type TopicResponse struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	ItemCount int    `json:"item_count"`
}

type SkillAreaResponse struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	ItemCount int    `json:"item_count"`
}

func NewCurriculumHandler(bank *contentbank.Bank, logger utils.Logger) *CurriculumHandler {
	return &CurriculumHandler{
		BaseHandler: NewBaseHandler(logger),
		bank:        bank,
	}
}

// ListTopics returns the curriculum topics
// @Summary List topics
// @Description Returns all Lernfelder with their item counts
// @Tags curriculum
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]TopicResponse}
// @Router /curriculum/topics [get]
func (h *CurriculumHandler) ListTopics(c *gin.Context) {
	topics := make([]TopicResponse, 0, len(models.Topics))
	for _, topic := range models.Topics {
		topics = append(topics, TopicResponse{
			Code:      topic.Code,
			Label:     topic.Label,
			ItemCount: len(h.bank.ByTopic(topic.Code)),
		})
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Topics retrieved",
		Data:    topics,
	})
}

// ListAreas returns the skill areas of a topic
// @Summary List skill areas
// @Description Returns the skill areas of one Lernfeld with item counts
// @Tags curriculum
// @Produce json
// @Param topic path string true "Topic code (LF1..LF10)"
// @Success 200 {object} SuccessResponse{data=[]SkillAreaResponse}
// @Failure 404 {object} ErrorResponse
// @Router /curriculum/topics/{topic}/areas [get]
func (h *CurriculumHandler) ListAreas(c *gin.Context) {
	topic := ParseStringParam(c, "topic")
	if topic == "" {
		return
	}

	areas, ok := models.TopicAreas[topic]
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "topic not found",
		})
		return
	}

	out := make([]SkillAreaResponse, 0, len(areas))
	for _, area := range areas {
		out = append(out, SkillAreaResponse{
			Key:       area.Key,
			Label:     area.Label,
			ItemCount: len(h.bank.ByScope(topic, area.Key)),
		})
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Skill areas retrieved",
		Data:    out,
	})
}
