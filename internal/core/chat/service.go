package chat

import (
	"context"

	"garden-advisor/internal/core/catalog"
	"garden-advisor/internal/infrastructure/config"
	"garden-advisor/internal/pkg/common"

	"go.uber.org/zap"
)

// Fallback texts shown to the user. Every failure mode maps to one of
// these; no turn ever surfaces a technical error.
const (
	fallbackNoCategories = "Lo siento, no pude identificar categorías relevantes para tu consulta. Por favor, intenta reformular tu pregunta."
	fallbackNoProducts   = "Lo siento, no encontré productos disponibles en las categorías relevantes. Por favor, intenta con otra consulta."
	fallbackGeneration   = "Lo siento, ha ocurrido un error al procesar tu consulta. Por favor, inténtalo de nuevo."
)

// Service orchestrates one chat turn: classify, aggregate, generate,
// extract. Each stage either produces input for the next or short-circuits
// to a fallback response.
type Service struct {
	classifier *Classifier
	aggregator *Aggregator
	generator  *Generator
	extractor  *Extractor
	index      *catalog.Index
}

// NewService wires the chat pipeline around a shared completion client and
// the catalog index.
func NewService(ai CompletionClient, index *catalog.Index, cfg *config.Config) *Service {
	return &Service{
		classifier: NewClassifier(ai, cfg),
		aggregator: NewAggregator(index, cfg.AI.CategoryCap),
		generator:  NewGenerator(ai, cfg),
		extractor:  NewExtractor(),
		index:      index,
	}
}

// HandleChat runs the full pipeline for one request. It always returns a
// well-formed response and never an error; failures inside the pipeline
// degrade to apologetic fallback texts.
func (s *Service) HandleChat(ctx context.Context, req *common.ChatRequest) *Response {
	common.LogInfo("handling chat request",
		zap.String("location", req.Location),
		zap.Int("month", req.Month),
		zap.Int("message_length", len(req.Message)),
	)

	categoryIDs := s.classifier.Classify(ctx, req.Message, s.index.Categories())
	if len(categoryIDs) == 0 {
		common.LogInfo("no relevant categories for query")
		return &Response{
			Text:        fallbackNoCategories,
			Products:    []catalog.Product{},
			Explanation: "No se encontraron categorías relevantes.",
		}
	}

	candidates := s.aggregator.Aggregate(categoryIDs)
	if len(candidates) == 0 {
		common.LogInfo("no candidate products for categories",
			zap.Strings("category_ids", categoryIDs),
		)
		return &Response{
			Text:        fallbackNoProducts,
			Products:    []catalog.Product{},
			Explanation: "No se encontraron productos en las categorías identificadas.",
		}
	}

	rawText, err := s.generator.Recommend(ctx, candidates, req)
	if err != nil {
		common.LogError("recommendation generation failed",
			zap.Error(err),
			zap.Int("candidates", len(candidates)),
		)
		return &Response{
			Text:        fallbackGeneration,
			Products:    []catalog.Product{},
			Explanation: "No se pudieron generar recomendaciones en este momento.",
		}
	}

	products := s.extractor.Extract(rawText, candidates)
	explanation := "Recomendaciones generadas a partir de la consulta y el contexto del usuario."
	if len(products) == 0 {
		// Partial success: the text still goes out without product cards.
		explanation = "No se pudieron asociar productos del catálogo a la respuesta."
	}
	if products == nil {
		products = []catalog.Product{}
	}

	common.LogInfo("chat request completed",
		zap.Int("products", len(products)),
		zap.Int("response_length", len(rawText)),
	)

	return &Response{
		Text:        rawText,
		Products:    products,
		Explanation: explanation,
	}
}
