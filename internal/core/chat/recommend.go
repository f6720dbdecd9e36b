package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"garden-advisor/internal/core/catalog"
	upstream "garden-advisor/internal/core/service"
	"garden-advisor/internal/infrastructure/config"
	"garden-advisor/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator asks the LLM for a natural-language recommendation over a set of
// candidate products.
type Generator struct {
	ai     CompletionClient
	config *config.Config
}

// NewGenerator creates the recommendation generator.
func NewGenerator(ai CompletionClient, cfg *config.Config) *Generator {
	return &Generator{
		ai:     ai,
		config: cfg,
	}
}

const generatorSystemPrompt = "Eres un experto en maquinaria de huerto y jardín de Bauhaus."

// candidateProjection is the minimal product view sent to the model. Full
// catalog records would blow the token budget.
type candidateProjection struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	ID          string  `json:"id"`
}

// Recommend generates the recommendation text for candidates in the user's
// context. Unlike classification, failures here propagate; the orchestrator
// owns the fallback.
func (g *Generator) Recommend(ctx context.Context, candidates []catalog.Product, req *common.ChatRequest) (string, error) {
	projections := make([]candidateProjection, len(candidates))
	for i, p := range candidates {
		projections[i] = candidateProjection{
			Name:        p.Name,
			Price:       p.Price,
			Category:    p.Category,
			Brand:       p.Brand,
			Description: p.Description,
			URL:         p.URL,
			ID:          p.ID,
		}
	}

	serialized, err := json.MarshalIndent(projections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize candidates: %w", err)
	}

	prompt := buildRecommendPrompt(string(serialized), req)

	common.LogDebug("generating recommendation",
		zap.Int("candidates", len(candidates)),
		zap.Int("prompt_length", len(prompt)),
	)

	content, err := g.ai.Complete(ctx, generatorSystemPrompt, prompt, upstream.CompletionOptions{
		Temperature: 0.7,
		MaxTokens:   g.config.AI.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("recommendation generation failed: %w", err)
	}

	return content, nil
}

func buildRecommendPrompt(serializedCandidates string, req *common.ChatRequest) string {
	weatherClause := ""
	if req.Weather != nil {
		weatherClause = fmt.Sprintf(", donde el clima es %s, con una temperatura de %.0f°C, humedad del %.0f%% y viento de %.0f km/h",
			req.Weather.Condition, req.Weather.Temperature, req.Weather.Humidity, req.Weather.WindSpeed)
	}

	return fmt.Sprintf(`Eres un experto en maquinaria de huerto y jardín de Bauhaus. Tu objetivo es ayudar a los clientes a encontrar los productos más adecuados para sus necesidades de huerto y jardinería en %s durante el mes %d%s.

La consulta del cliente es: "%s"

Por favor, analiza los siguientes productos de nuestro catálogo y recomienda los 3 más adecuados, explicando por qué son ideales para este caso específico:

%s

Recuerda:
1. Utiliza EXCLUSIVAMENTE productos que estén en el catálogo
2. Incluir el nombre exacto del producto, precio y características
3. Menciona la categoría a la que pertenece el producto
4. Explicar por qué cada producto es adecuado para este caso, sin repetir los mismos motivos para cada producto
5. Formatear los precios en euros (€)
6. Si el producto tiene una URL, inclúyela en la respuesta como un enlace markdown desde el nombre del producto. Por ejemplo: "[Cortacésped eléctrico X](https://www.bauhaus.es/cortacesped-electrico-x)"
7. IMPORTANTE: Recomendar SOLO 3 productos como máximo
8. CRÍTICO: Asegúrate de que los 3 productos recomendados sean DIVERSOS:
   - Si la consulta es sobre una categoría específica (ej. cortacéspedes), elige productos con características diferentes (ej. diferentes tipos de motor, tamaños, precios)
   - Si la consulta es general (ej. herramientas para jardín), elige productos de DIFERENTES CATEGORÍAS (ej. un cortacésped, una podadora, una desbrozadora)
   - Evita recomendar productos muy similares entre sí`,
		req.Location, req.Month, weatherClause, req.Message, serializedCandidates)
}
