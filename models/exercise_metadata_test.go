package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageTextMetadata(t *testing.T) {
	for _, raw := range []string{``, ` `, `null`, `{}`} {
		metadata, err := ParseExerciseMetadata(ExerciseImageText, []byte(raw))
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, ImageTextMetadata{}, metadata)
	}

	_, err := ParseExerciseMetadata(ExerciseImageText, []byte(`{"extra":1}`))
	assert.Error(t, err)

	_, err = ParseExerciseMetadata(ExerciseImageText, []byte(`[]`))
	assert.Error(t, err)
}

func TestParseMatchingPairsMetadata(t *testing.T) {
	imageID := uuid.New()
	textID := uuid.New()
	raw := []byte(`{"pairs":[{"image_id":"` + imageID.String() + `","text_id":"` + textID.String() + `"}]}`)

	metadata, err := ParseExerciseMetadata(ExerciseMatchingPairs, raw)
	require.NoError(t, err)
	pairs, ok := metadata.(MatchingPairsMetadata)
	require.True(t, ok)
	require.Len(t, pairs.Pairs, 1)
	assert.Equal(t, imageID, pairs.Pairs[0].ImageID)
	assert.Equal(t, textID, pairs.Pairs[0].TextID)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	raw := []byte(`{"sentence":"a b c","blank_index":1,"correct_answer":"b","distractors":["x","y"],"hint":"nope"}`)
	_, err := ParseExerciseMetadata(ExerciseFillInBlank, raw)
	assert.Error(t, err)
}

func TestParseRejectsEmptyForTypedVariants(t *testing.T) {
	for _, exerciseType := range []ExerciseType{ExerciseMatchingPairs, ExerciseFillInBlank, ExerciseListening} {
		_, err := ParseExerciseMetadata(exerciseType, nil)
		assert.Error(t, err, "type %s", exerciseType)
	}
}

func TestParseListeningMetadata(t *testing.T) {
	audioTextID := uuid.New()
	optionA := uuid.New()
	optionB := uuid.New()
	raw := []byte(`{"audio_text_id":"` + audioTextID.String() +
		`","image_options":["` + optionA.String() + `","` + optionB.String() +
		`"],"correct_image_index":1}`)

	metadata, err := ParseExerciseMetadata(ExerciseListening, raw)
	require.NoError(t, err)
	listening, ok := metadata.(ListeningComprehensionMetadata)
	require.True(t, ok)
	assert.Equal(t, audioTextID, listening.AudioTextID)
	assert.Equal(t, []uuid.UUID{optionA, optionB}, listening.ImageOptions)
	assert.Equal(t, 1, listening.CorrectImageIndex)
}

func TestParseUnknownType(t *testing.T) {
	_, err := ParseExerciseMetadata(ExerciseType("crossword"), []byte(`{}`))
	assert.Error(t, err)
}
