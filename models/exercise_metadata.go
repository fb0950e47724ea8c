package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ExerciseMetadata is the tagged union behind Exercise.Metadata. Which case
// applies is decided by Exercise.ExerciseType; ParseExerciseMetadata is the
// only way to get from the stored JSON to a typed value, so downstream code
// never touches the raw bag.
type ExerciseMetadata interface {
	exerciseMetadata()
}

// ImageTextMetadata has no fields: the exercise is just the image plus its
// translated text.
type ImageTextMetadata struct{}

type MatchingPair struct {
	ImageID uuid.UUID `json:"image_id"`
	TextID  uuid.UUID `json:"text_id"`
}

type MatchingPairsMetadata struct {
	Pairs []MatchingPair `json:"pairs"`
}

type FillInBlankMetadata struct {
	Sentence      string   `json:"sentence"`
	BlankIndex    int      `json:"blank_index"`
	CorrectAnswer string   `json:"correct_answer"`
	Distractors   []string `json:"distractors"`
}

type ListeningComprehensionMetadata struct {
	AudioTextID       uuid.UUID   `json:"audio_text_id"`
	ImageOptions      []uuid.UUID `json:"image_options"`
	CorrectImageIndex int         `json:"correct_image_index"`
}

func (ImageTextMetadata) exerciseMetadata()              {}
func (MatchingPairsMetadata) exerciseMetadata()          {}
func (FillInBlankMetadata) exerciseMetadata()            {}
func (ListeningComprehensionMetadata) exerciseMetadata() {}

// ParseExerciseMetadata decodes raw metadata into the variant selected by
// the exercise type. Decoding is strict: unknown fields are rejected, and
// image_text accepts only an empty object (or nothing at all).
func ParseExerciseMetadata(t ExerciseType, raw []byte) (ExerciseMetadata, error) {
	switch t {
	case ExerciseImageText:
		if !isEmptyJSONObject(raw) {
			return nil, fmt.Errorf("metadata must be empty for %s exercises", ExerciseImageText)
		}
		return ImageTextMetadata{}, nil
	case ExerciseMatchingPairs:
		var m MatchingPairsMetadata
		if err := decodeStrict(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case ExerciseFillInBlank:
		var m FillInBlankMetadata
		if err := decodeStrict(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case ExerciseListening:
		var m ListeningComprehensionMetadata
		if err := decodeStrict(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown exercise type %q", t)
	}
}

func decodeStrict(raw []byte, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("metadata is required")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func isEmptyJSONObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return false
	}
	return len(m) == 0
}
