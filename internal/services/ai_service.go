package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"healthdiary/internal/config"
	"healthdiary/internal/domain"
)

// AIService wraps the vision providers that turn a meal photo into
// recognized food items and a nutrition estimate.
type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
	provider     string
}

// FoodRecognitionResult is the provider-neutral recognition output.
type FoodRecognitionResult struct {
	DishName string                  `json:"dish_name"`
	Items    []domain.RecognizedItem `json:"items"`
	Calories float64                 `json:"calories"`
	Protein  float64                 `json:"protein"`
	Carbs    float64                 `json:"carbs"`
	Fat      float64                 `json:"fat"`
}

// Nutrition returns the estimate as a MealNutrition payload.
func (r *FoodRecognitionResult) Nutrition() domain.MealNutrition {
	return domain.MealNutrition{
		Calories: r.Calories,
		Protein:  r.Protein,
		Carbs:    r.Carbs,
		Fat:      r.Fat,
	}
}

// NewAIService creates the recognition service for the configured provider.
func NewAIService(ctx context.Context, cfg config.AIConfig) (*AIService, error) {
	s := &AIService{provider: cfg.Provider}

	if cfg.GeminiAPIKey != "" {
		geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = geminiClient
	}
	if cfg.OpenAIAPIKey != "" {
		s.openaiClient = openai.NewClient(cfg.OpenAIAPIKey)
	}

	switch cfg.Provider {
	case "gemini":
		if s.geminiClient == nil {
			return nil, fmt.Errorf("AI provider is gemini but GEMINI_API_KEY is not set")
		}
	case "openai":
		if s.openaiClient == nil {
			return nil, fmt.Errorf("AI provider is openai but OPENAI_API_KEY is not set")
		}
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}

	return s, nil
}

const recognitionPrompt = `You are a nutritionist analyzing a photo of a meal.

TASK:
1. Identify every food item visible in the image
2. Estimate each item's quantity with a unit (grams, ml, pieces)
3. Rate your confidence per item (low, medium, high)
4. Estimate the total calories, protein, carbohydrates and fat of the meal
   in kcal and grams, based on standard nutritional databases
5. Name the dish in a few words

REQUIREMENTS:
- Consider portion sizes and the plate/bowl size if visible
- Include likely hidden ingredients (oil, sugar, sauces)
- If the image contains nutritional information or packaging, prioritize
  that data
- If the image does not contain food, respond with an empty items list

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any markdown formatting or explanatory text around it
- The JSON must have these exact fields:
  {
    "dish_name": "Grilled chicken with rice",
    "items": [
      {"name": "Chicken breast", "quantity": 200, "unit": "g", "confidence": "high"}
    ],
    "calories": 330.0,
    "protein": 62.0,
    "carbs": 0.0,
    "fat": 7.0
  }`

// RecognizeFood analyzes a meal photo and returns the recognized items and
// nutrition estimate.
func (s *AIService) RecognizeFood(ctx context.Context, imageData []byte, mimeType string) (*FoodRecognitionResult, error) {
	if s.provider == "openai" {
		return s.recognizeWithOpenAI(ctx, imageData, mimeType)
	}
	return s.recognizeWithGemini(ctx, imageData, mimeType)
}

func (s *AIService) recognizeWithGemini(ctx context.Context, imageData []byte, mimeType string) (*FoodRecognitionResult, error) {
	model := s.geminiClient.GenerativeModel("gemini-1.5-flash")

	img := genai.ImageData(imageSubtype(mimeType), imageData)
	resp, err := model.GenerateContent(ctx, img, genai.Text(recognitionPrompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type from Gemini")
	}
	return parseRecognition(string(text))
}

func (s *AIService) recognizeWithOpenAI(ctx context.Context, imageData []byte, mimeType string) (*FoodRecognitionResult, error) {
	imageURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	resp, err := s.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: recognitionPrompt,
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: imageURL,
							},
						},
					},
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}
	return parseRecognition(resp.Choices[0].Message.Content)
}

func parseRecognition(text string) (*FoodRecognitionResult, error) {
	jsonStr := extractJSON(text)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}
	var result FoodRecognitionResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("no food recognized in the image")
	}
	return &result, nil
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func imageSubtype(mimeType string) string {
	if sub, ok := strings.CutPrefix(mimeType, "image/"); ok && sub != "" {
		return sub
	}
	return "jpeg"
}
