package services

import (
	"testing"

	"healthdiary/internal/domain"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"dish_name":"soup"}`,
			want:  `{"dish_name":"soup"}`,
		},
		{
			name:  "markdown code block",
			input: "```json\n{\"dish_name\":\"soup\"}\n```",
			want:  `{"dish_name":"soup"}`,
		},
		{
			name:  "surrounding prose",
			input: "Here is the result: {\"dish_name\":\"soup\"} hope this helps",
			want:  `{"dish_name":"soup"}`,
		},
		{
			name:  "no json",
			input: "I cannot identify any food",
			want:  "",
		},
		{
			name:  "unbalanced",
			input: "} {",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRecognition(t *testing.T) {
	text := "```json\n" + `{
		"dish_name": "Grilled chicken with rice",
		"items": [
			{"name": "Chicken breast", "quantity": 200, "unit": "g", "confidence": "high"},
			{"name": "Rice", "quantity": 150, "unit": "g", "confidence": "medium"}
		],
		"calories": 520,
		"protein": 65,
		"carbs": 42,
		"fat": 9
	}` + "\n```"

	result, err := parseRecognition(text)
	if err != nil {
		t.Fatalf("parseRecognition: %v", err)
	}
	if result.DishName != "Grilled chicken with rice" {
		t.Errorf("dish = %q", result.DishName)
	}
	if len(result.Items) != 2 || result.Items[1].Confidence != domain.ConfidenceMedium {
		t.Errorf("items = %+v", result.Items)
	}

	n := result.Nutrition()
	if n.Calories != 520 || n.Protein != 65 || n.Carbs != 42 || n.Fat != 9 {
		t.Errorf("nutrition = %+v", n)
	}
}

func TestParseRecognitionRejectsEmptyItems(t *testing.T) {
	if _, err := parseRecognition(`{"dish_name":"?","items":[]}`); err == nil {
		t.Fatal("expected error for empty items")
	}
	if _, err := parseRecognition("no json here"); err == nil {
		t.Fatal("expected error for missing JSON")
	}
}

func TestImageSubtype(t *testing.T) {
	if got := imageSubtype("image/png"); got != "png" {
		t.Errorf("png subtype = %q", got)
	}
	if got := imageSubtype("application/pdf"); got != "jpeg" {
		t.Errorf("fallback subtype = %q", got)
	}
	if got := imageSubtype("image/"); got != "jpeg" {
		t.Errorf("empty subtype = %q", got)
	}
}
