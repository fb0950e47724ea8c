package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

func GeminiGenerateText(prompt string) (string, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return "", fmt.Errorf("cannot create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no usable result")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// SuggestDistractors asks Gemini for wrong-answer options for a
// fill-in-the-blank sentence. count is clamped to 2..6, matching the
// validator's minimum of 2 distractors.
func SuggestDistractors(sentence, correctAnswer, languageCode string, count int) ([]string, error) {
	if count < 2 {
		count = 2
	}
	if count > 6 {
		count = 6
	}

	prompt := fmt.Sprintf(`You generate distractors for a language-learning fill-in-the-blank exercise.
The sentence is in language %q. The word that fills the blank is %q.

Sentence: %s

Return exactly %d plausible but incorrect options of the same word class,
as a JSON array of strings. Do not include the correct answer. Return only
valid JSON, no other text.`, languageCode, correctAnswer, sentence, count)

	raw, err := GeminiGenerateText(prompt)
	if err != nil {
		return nil, err
	}

	// Gemini wraps JSON in markdown fences more often than not.
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "`")
	clean = strings.TrimPrefix(clean, "json")
	clean = strings.TrimSpace(clean)

	var distractors []string
	if err := json.Unmarshal([]byte(clean), &distractors); err != nil {
		return nil, fmt.Errorf("cannot parse Gemini response: %v", err)
	}

	filtered := make([]string, 0, len(distractors))
	for _, d := range distractors {
		d = strings.TrimSpace(d)
		if d == "" || strings.EqualFold(d, correctAnswer) {
			continue
		}
		filtered = append(filtered, d)
	}
	if len(filtered) < 2 {
		return nil, fmt.Errorf("gemini returned too few usable distractors")
	}
	return filtered, nil
}
