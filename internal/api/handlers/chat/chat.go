package chat

import (
	"net/http"

	chatService "garden-advisor/internal/core/chat"
	"garden-advisor/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler serves the chat endpoints.
type Handler struct {
	service *chatService.Service
}

// NewHandler creates the chat handler.
func NewHandler(service *chatService.Service) *Handler {
	return &Handler{service: service}
}

// chatRequest is the inbound body. Month is a pointer so a missing field
// can be told apart from January (0).
type chatRequest struct {
	Message  string              `json:"message"`
	Location string              `json:"location"`
	Month    *int                `json:"month"`
	Weather  *common.WeatherData `json:"weather"`
}

// HandleChat runs one chat turn. The orchestrator never fails, so outside
// of binding errors this always answers 200.
func (h *Handler) HandleChat(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid chat request body",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Faltan parámetros requeridos",
		})
		return
	}

	if req.Message == "" || req.Location == "" || req.Month == nil {
		common.LogWarn("chat request missing required fields",
			zap.Bool("has_message", req.Message != ""),
			zap.Bool("has_location", req.Location != ""),
			zap.Bool("has_month", req.Month != nil),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Faltan parámetros requeridos",
		})
		return
	}

	response := h.service.HandleChat(c.Request.Context(), &common.ChatRequest{
		Message:  req.Message,
		Location: req.Location,
		Month:    *req.Month,
		Weather:  req.Weather,
	})

	c.JSON(http.StatusOK, response)
}
