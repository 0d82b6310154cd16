package oracle

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini generates through the Google Gen AI API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey string, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*req.Temperature))
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = responseSchema(req.Kind)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", req.Kind, err)
	}
	return resp.Text(), nil
}

// responseSchema mirrors the JSON schemas in the Gemini schema dialect.
func responseSchema(kind Kind) *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	switch kind {
	case KindCase:
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":              str("Davanın dosya adı (Örn: 'Kasten Yaralama Davası')"),
				"defendantName":      str(""),
				"crime":              str("Suç tanımı (TCK maddesi referansı ile)"),
				"summary":            str("Olay örgüsü ve iddianame özeti"),
				"prosecutionOpening": str("Katılan vekilinin hukuki dille açılış konuşması"),
				"defenseOpening":     str("Sanık müdafiinin hukuki dille açılış konuşması"),
				"evidence": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"item":        str(""),
							"description": str(""),
						},
						Required: []string{"item", "description"},
					},
				},
				"witnesses": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":        str(""),
							"role":        str(""),
							"testimony":   str("Tanığın ilk beyanı"),
							"personality": str("Tutum ve davranışları"),
						},
						Required: []string{"name", "role", "testimony", "personality"},
					},
				},
				"keyPoints": {
					Type:        genai.TypeArray,
					Description: "Karar verirken hakime yardımcı olacak 3-4 adet kısa ipucu.",
					Items:       str(""),
				},
				"correctVerdict": {
					Type:        genai.TypeString,
					Description: "Guilty (Mahkumiyet) veya Not Guilty (Beraat)",
					Enum:        []string{"Guilty", "Not Guilty"},
				},
				"reasoning": str("Doğru kararın hukuki gerekçesi"),
			},
			Required: []string{
				"title", "defendantName", "crime", "summary", "prosecutionOpening", "defenseOpening",
				"evidence", "witnesses", "keyPoints", "correctVerdict", "reasoning",
			},
		}
	case KindEvaluation:
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score":    {Type: genai.TypeInteger, Description: "0-100 arası puan"},
				"feedback": str("Yargıtay üslubuyla hukuki geri bildirim"),
				"title":    str("Hakim unvanı"),
			},
			Required: []string{"score", "feedback", "title"},
		}
	default:
		return nil
	}
}
