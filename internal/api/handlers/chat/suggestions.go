package chat

import (
	"net/http"
	"strconv"

	"garden-advisor/internal/core/garden"
	"garden-advisor/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GardenHandler serves the seasonal-advice and specification endpoints.
type GardenHandler struct {
	service *garden.Service
}

// NewGardenHandler creates the garden handler.
func NewGardenHandler(service *garden.Service) *GardenHandler {
	return &GardenHandler{service: service}
}

// HandleSuggestions returns seasonal tasks and suggested questions for a
// region and month.
func (h *GardenHandler) HandleSuggestions(c *gin.Context) {
	region := c.Query("region")
	if region == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Faltan parámetros requeridos",
		})
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Faltan parámetros requeridos",
		})
		return
	}

	info := garden.SeasonalInfoFor(region, month)

	common.LogDebug("seasonal suggestions served",
		zap.String("region", region),
		zap.Int("month", month),
		zap.String("season", info.Season),
	)

	c.JSON(http.StatusOK, gin.H{
		"region":   region,
		"month":    month,
		"seasonal": info,
	})
}

// specificationRequest drives the interactive question sequence. Without a
// state the sequence starts; with one it advances using the answer.
type specificationRequest struct {
	Category string                    `json:"category"`
	Answer   string                    `json:"answer"`
	State    *garden.ConversationState `json:"state"`
}

// HandleSpecifications starts or advances a specification conversation.
func (h *GardenHandler) HandleSpecifications(c *gin.Context) {
	var req specificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Faltan parámetros requeridos",
		})
		return
	}

	if req.State == nil {
		if req.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Faltan parámetros requeridos",
			})
			return
		}

		state, spec, err := h.service.StartConversation(req.Category)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Categoría no encontrada",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"state":         state,
			"specification": spec,
			"done":          false,
		})
		return
	}

	// Advance resets the state when the sequence completes, so collect the
	// answers beforehand to return them on the final turn.
	answers := make(map[string]string, len(req.State.AnsweredSpecifications)+1)
	for k, v := range req.State.AnsweredSpecifications {
		answers[k] = v
	}
	answers[req.State.CurrentSpecification] = req.Answer

	next, done, err := h.service.Advance(req.State, req.Answer)
	if err != nil {
		common.LogWarn("specification advance failed",
			zap.Error(err),
			zap.String("category", req.State.CurrentCategory),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Estado de conversación no válido",
		})
		return
	}

	resp := gin.H{
		"state":         req.State,
		"specification": next,
		"done":          done,
	}
	if done {
		resp["answers"] = answers
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCategories lists the categories with interactive specifications.
func (h *GardenHandler) HandleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.service.Categories(),
	})
}
