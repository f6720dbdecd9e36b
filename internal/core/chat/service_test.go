package chat

import (
	"context"
	"strings"
	"testing"

	upstream "garden-advisor/internal/core/service"
	"garden-advisor/internal/pkg/common"
)

func testRequest() *common.ChatRequest {
	return &common.ChatRequest{
		Message:  "busco un cortacésped para un jardín pequeño",
		Location: "Madrid",
		Month:    4,
	}
}

func TestHandleChatHappyPath(t *testing.T) {
	idx := loadChatIndex(t)
	client := &fakeClient{
		responses: []string{
			`["cortacespedes-electricos"]`,
			`Te recomiendo el [Cortacésped eléctrico Alfa 1200](https://www.bauhaus.es/cortacespedes-electricos/alfa-1200/p/10001) por 129 €.`,
		},
	}
	s := NewService(client, idx, testConfig())

	resp := s.HandleChat(context.Background(), testRequest())

	if client.calls != 2 {
		t.Fatalf("client called %d times, want 2 (classifier + generator)", client.calls)
	}
	if !strings.Contains(resp.Text, "Alfa 1200") {
		t.Errorf("Text = %q, want the generated recommendation", resp.Text)
	}
	if len(resp.Products) != 1 || resp.Products[0].ID != "10001" {
		t.Errorf("Products = %v, want the linked product", resp.Products)
	}
	if resp.Explanation == "" {
		t.Error("Explanation is empty")
	}

	// generator runs at the higher temperature
	if client.opts[1].Temperature != 0.7 {
		t.Errorf("generator Temperature = %v, want 0.7", client.opts[1].Temperature)
	}
}

func TestHandleChatOffDomainSkipsGenerator(t *testing.T) {
	idx := loadChatIndex(t)
	client := &fakeClient{responses: []string{`[]`}}
	s := NewService(client, idx, testConfig())

	resp := s.HandleChat(context.Background(), &common.ChatRequest{
		Message:  "receta de paella valenciana",
		Location: "Valencia",
		Month:    6,
	})

	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1 (generator must not run)", client.calls)
	}
	if resp.Text != fallbackNoCategories {
		t.Errorf("Text = %q, want the no-categories fallback", resp.Text)
	}
	if len(resp.Products) != 0 {
		t.Errorf("Products = %v, want empty", resp.Products)
	}
}

func TestHandleChatClassifierFailureFallsBack(t *testing.T) {
	idx := loadChatIndex(t)
	client := &fakeClient{errs: []error{&upstream.APIError{StatusCode: 429, Body: "rate limited"}}}
	s := NewService(client, idx, testConfig())

	resp := s.HandleChat(context.Background(), testRequest())

	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1", client.calls)
	}
	if resp.Text != fallbackNoCategories {
		t.Errorf("Text = %q, want the no-categories fallback", resp.Text)
	}
}

func TestHandleChatNoProductsFallsBack(t *testing.T) {
	idx := loadChatIndex(t)
	client := &fakeClient{responses: []string{`["taladros-percutores"]`}}
	s := NewService(client, idx, testConfig())

	resp := s.HandleChat(context.Background(), testRequest())

	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1 (no candidates, generator must not run)", client.calls)
	}
	if resp.Text != fallbackNoProducts {
		t.Errorf("Text = %q, want the no-products fallback", resp.Text)
	}
	if len(resp.Products) != 0 {
		t.Errorf("Products = %v, want empty", resp.Products)
	}
}

func TestHandleChatGeneratorFailureFallsBack(t *testing.T) {
	idx := loadChatIndex(t)
	client := &fakeClient{
		responses: []string{`["cortacespedes"]`, ""},
		errs:      []error{nil, &upstream.APIError{StatusCode: 500, Body: "upstream down"}},
	}
	s := NewService(client, idx, testConfig())

	resp := s.HandleChat(context.Background(), testRequest())

	if client.calls != 2 {
		t.Fatalf("client called %d times, want 2", client.calls)
	}
	if resp.Text != fallbackGeneration {
		t.Errorf("Text = %q, want the generation fallback", resp.Text)
	}
	if len(resp.Products) != 0 {
		t.Errorf("Products = %v, want empty", resp.Products)
	}
}

func TestHandleChatTextWithoutResolvableLinks(t *testing.T) {
	idx := loadChatIndex(t)
	client := &fakeClient{
		responses: []string{
			`["cortacespedes"]`,
			`Para un jardín pequeño cualquier modelo ligero sirve, revisa nuestro catálogo.`,
		},
	}
	s := NewService(client, idx, testConfig())

	resp := s.HandleChat(context.Background(), testRequest())

	if !strings.Contains(resp.Text, "jardín pequeño") {
		t.Errorf("Text = %q, want the raw generated text", resp.Text)
	}
	if len(resp.Products) != 0 {
		t.Errorf("Products = %v, want empty when nothing resolves", resp.Products)
	}
	if !strings.Contains(resp.Explanation, "No se pudieron asociar") {
		t.Errorf("Explanation = %q, want the no-match explanation", resp.Explanation)
	}
}

func TestHandleChatGeneratorPromptCarriesContext(t *testing.T) {
	idx := loadChatIndex(t)
	client := &fakeClient{
		responses: []string{`["desbrozadoras"]`, `Sin enlaces.`},
	}
	s := NewService(client, idx, testConfig())

	req := testRequest()
	req.Weather = &common.WeatherData{
		Condition:   "soleado",
		Temperature: 28,
		Humidity:    40,
		WindSpeed:   10,
	}
	s.HandleChat(context.Background(), req)

	if client.calls != 2 {
		t.Fatalf("client called %d times, want 2", client.calls)
	}

	prompt := client.users[1]
	for _, want := range []string{"Madrid", "soleado", "28", "Desbrozadora Gamma 450", req.Message} {
		if !strings.Contains(prompt, want) {
			t.Errorf("generator prompt missing %q", want)
		}
	}
}
