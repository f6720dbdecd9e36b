package chat

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"garden-advisor/internal/core/catalog"
	upstream "garden-advisor/internal/core/service"
	"garden-advisor/internal/infrastructure/config"
)

// fakeClient scripts the upstream responses call by call.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int
	systems   []string
	users     []string
	opts      []upstream.CompletionOptions
}

func (f *fakeClient) Complete(ctx context.Context, system, user string, opts upstream.CompletionOptions) (string, error) {
	i := f.calls
	f.calls++
	f.systems = append(f.systems, system)
	f.users = append(f.users, user)
	f.opts = append(f.opts, opts)

	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", fmt.Errorf("unexpected call %d", i)
}

func testConfig() *config.Config {
	return &config.Config{
		AI: config.AIConfig{
			MaxTokens:           1000,
			ClassifierMaxTokens: 100,
			CategoryCap:         10,
		},
	}
}

func loadChatIndex(t *testing.T) *catalog.Index {
	t.Helper()
	idx, err := catalog.Load(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return idx
}

func TestClassifyParsesModelOutput(t *testing.T) {
	idx := loadChatIndex(t)

	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "bare array",
			response: `["cortacespedes-electricos", "desbrozadoras"]`,
			want:     []string{"cortacespedes-electricos", "desbrozadoras"},
		},
		{
			name:     "fenced array",
			response: "```json\n[\"cortasetos\"]\n```",
			want:     []string{"cortasetos"},
		},
		{
			name:     "array wrapped in prose",
			response: `The relevant categories are: ["desbrozadoras"] as requested.`,
			want:     []string{"desbrozadoras"},
		},
		{
			name:     "object with categories key",
			response: `{"categories": ["cortacespedes-de-bateria"]}`,
			want:     []string{"cortacespedes-de-bateria"},
		},
		{
			name:     "off-domain empty array",
			response: `[]`,
			want:     []string{},
		},
		{
			name:     "blank entries dropped",
			response: `["cortasetos", "", "  "]`,
			want:     []string{"cortasetos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{responses: []string{tt.response}}
			c := NewClassifier(client, testConfig())

			got := c.Classify(context.Background(), "necesito una máquina", idx.Categories())
			if len(got) != len(tt.want) {
				t.Fatalf("Classify returned %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Classify[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClassifyDegradesToEmptyOnFailure(t *testing.T) {
	idx := loadChatIndex(t)

	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "api error", err: &upstream.APIError{StatusCode: 500, Body: "boom"}},
		{name: "not json", response: "Lo siento, no puedo ayudarte con eso."},
		{name: "json but not an array", response: `{"answer": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{responses: []string{tt.response}, errs: []error{tt.err}}
			c := NewClassifier(client, testConfig())

			if got := c.Classify(context.Background(), "cualquier cosa", idx.Categories()); len(got) != 0 {
				t.Errorf("Classify = %v, want empty on failure", got)
			}
		})
	}
}

func TestClassifyPromptEnumeratesCategories(t *testing.T) {
	idx := loadChatIndex(t)
	client := &fakeClient{responses: []string{`[]`}}
	c := NewClassifier(client, testConfig())

	c.Classify(context.Background(), "quiero cortar el césped", idx.Categories())

	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1", client.calls)
	}

	user := client.users[0]
	if !strings.Contains(user, `"quiero cortar el césped"`) {
		t.Error("prompt does not embed the user query")
	}
	for _, cat := range idx.Categories() {
		line := fmt.Sprintf("- %s (%s): %s", cat.Name, cat.ID, cat.Description)
		if !strings.Contains(user, line) {
			t.Errorf("prompt missing category line %q", line)
		}
	}

	opts := client.opts[0]
	if opts.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", opts.Temperature)
	}
	if opts.MaxTokens != 100 {
		t.Errorf("MaxTokens = %d, want 100", opts.MaxTokens)
	}
}

func TestClassifyWithoutCategories(t *testing.T) {
	client := &fakeClient{}
	c := NewClassifier(client, testConfig())

	if got := c.Classify(context.Background(), "hola", nil); got != nil {
		t.Errorf("Classify = %v, want nil without categories", got)
	}
	if client.calls != 0 {
		t.Errorf("client called %d times, want 0", client.calls)
	}
}
