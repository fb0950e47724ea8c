package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

func newValidator(db *gorm.DB) *ExerciseValidator {
	images := NewImageRegistry(db)
	return NewExerciseValidator(images, NewTranslationService(db, images))
}

// createTranslatedImage gives the image one translation so it passes the
// referential check.
func createTranslatedImage(t *testing.T, db *gorm.DB, uploadedBy uuid.UUID) models.Image {
	t.Helper()
	image := createTestImage(t, db, uploadedBy)
	images := NewImageRegistry(db)
	_, err := NewTranslationService(db, images).AddText(image.ID, "es", "la manzana")
	require.NoError(t, err)
	return image
}

func TestValidateUnknownImage(t *testing.T) {
	db := newTestDB(t)
	v := newValidator(db)

	_, err := v.Validate(models.ExerciseImageText, uuid.New(), []byte(`{}`))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "image", notFound.Entity)
}

func TestValidateImageWithoutText(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	v := newValidator(db)

	_, err := v.Validate(models.ExerciseImageText, image.ID, []byte(`{}`))
	var refErr *ReferentialIntegrityError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "no associated text", refErr.Reason)
}

func TestValidateUnknownExerciseType(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTranslatedImage(t, db, user.ID)
	v := newValidator(db)

	_, err := v.Validate(models.ExerciseType("crossword"), image.ID, []byte(`{}`))
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "exercise_type", valErr.Field)
}

func TestValidateImageText(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTranslatedImage(t, db, user.ID)
	v := newValidator(db)

	for _, raw := range []string{``, `null`, `{}`} {
		metadata, err := v.Validate(models.ExerciseImageText, image.ID, []byte(raw))
		require.NoError(t, err, "metadata %q", raw)
		assert.IsType(t, models.ImageTextMetadata{}, metadata)
	}

	_, err := v.Validate(models.ExerciseImageText, image.ID, []byte(`{"hint":"x"}`))
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "metadata", valErr.Field)
}

func TestValidateMatchingPairsMinimum(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTranslatedImage(t, db, user.ID)
	v := newValidator(db)

	raw := fmt.Sprintf(`{"pairs":[{"image_id":"%s","text_id":"%s"}]}`, image.ID, uuid.New())
	_, err := v.Validate(models.ExerciseMatchingPairs, image.ID, []byte(raw))
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "pairs", valErr.Field)
}

func TestValidateMatchingPairsImageMustExist(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTranslatedImage(t, db, user.ID)
	other := createTranslatedImage(t, db, user.ID)
	v := newValidator(db)

	missing := uuid.New()
	raw := fmt.Sprintf(
		`{"pairs":[{"image_id":"%s","text_id":"%s"},{"image_id":"%s","text_id":"%s"}]}`,
		other.ID, uuid.New(), missing, uuid.New(),
	)
	_, err := v.Validate(models.ExerciseMatchingPairs, image.ID, []byte(raw))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing.String(), notFound.ID)
}

func TestValidateMatchingPairsOK(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTranslatedImage(t, db, user.ID)
	other := createTranslatedImage(t, db, user.ID)
	v := newValidator(db)

	raw := fmt.Sprintf(
		`{"pairs":[{"image_id":"%s","text_id":"%s"},{"image_id":"%s","text_id":"%s"}]}`,
		image.ID, uuid.New(), other.ID, uuid.New(),
	)
	metadata, err := v.Validate(models.ExerciseMatchingPairs, image.ID, []byte(raw))
	require.NoError(t, err)
	pairs, ok := metadata.(models.MatchingPairsMetadata)
	require.True(t, ok)
	assert.Len(t, pairs.Pairs, 2)
}

func TestValidateFillInBlank(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTranslatedImage(t, db, user.ID)
	v := newValidator(db)

	build := func(m models.FillInBlankMetadata) []byte {
		raw, err := json.Marshal(m)
		require.NoError(t, err)
		return raw
	}

	valid := models.FillInBlankMetadata{
		Sentence:      "el gato come pescado",
		BlankIndex:    1,
		CorrectAnswer: "come",
		Distractors:   []string{"bebe", "duerme"},
	}

	_, err := v.Validate(models.ExerciseFillInBlank, image.ID, build(valid))
	require.NoError(t, err)

	t.Run("blank index past end of sentence", func(t *testing.T) {
		m := valid
		m.BlankIndex = 4
		_, err := v.Validate(models.ExerciseFillInBlank, image.ID, build(m))
		var oob *OutOfBoundsError
		require.ErrorAs(t, err, &oob)
		assert.Equal(t, "blank_index", oob.Field)
	})

	t.Run("negative blank index", func(t *testing.T) {
		m := valid
		m.BlankIndex = -1
		_, err := v.Validate(models.ExerciseFillInBlank, image.ID, build(m))
		var oob *OutOfBoundsError
		require.ErrorAs(t, err, &oob)
	})

	t.Run("empty sentence", func(t *testing.T) {
		m := valid
		m.Sentence = "   "
		_, err := v.Validate(models.ExerciseFillInBlank, image.ID, build(m))
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "sentence", valErr.Field)
	})

	t.Run("missing correct answer", func(t *testing.T) {
		m := valid
		m.CorrectAnswer = ""
		_, err := v.Validate(models.ExerciseFillInBlank, image.ID, build(m))
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "correct_answer", valErr.Field)
	})

	t.Run("too few distractors", func(t *testing.T) {
		m := valid
		m.Distractors = []string{"bebe"}
		_, err := v.Validate(models.ExerciseFillInBlank, image.ID, build(m))
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "distractors", valErr.Field)
	})

	t.Run("blank distractor entry", func(t *testing.T) {
		m := valid
		m.Distractors = []string{"bebe", " "}
		_, err := v.Validate(models.ExerciseFillInBlank, image.ID, build(m))
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "distractors", valErr.Field)
	})
}

func TestValidateListeningComprehension(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTranslatedImage(t, db, user.ID)
	optionA := createTranslatedImage(t, db, user.ID)
	optionB := createTranslatedImage(t, db, user.ID)
	v := newValidator(db)

	build := func(m models.ListeningComprehensionMetadata) []byte {
		raw, err := json.Marshal(m)
		require.NoError(t, err)
		return raw
	}

	valid := models.ListeningComprehensionMetadata{
		AudioTextID:       uuid.New(),
		ImageOptions:      []uuid.UUID{optionA.ID, optionB.ID},
		CorrectImageIndex: 1,
	}

	_, err := v.Validate(models.ExerciseListening, image.ID, build(valid))
	require.NoError(t, err)

	t.Run("too few options", func(t *testing.T) {
		m := valid
		m.ImageOptions = []uuid.UUID{optionA.ID}
		m.CorrectImageIndex = 0
		_, err := v.Validate(models.ExerciseListening, image.ID, build(m))
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "image_options", valErr.Field)
	})

	t.Run("unknown option image", func(t *testing.T) {
		m := valid
		m.ImageOptions = []uuid.UUID{optionA.ID, uuid.New()}
		_, err := v.Validate(models.ExerciseListening, image.ID, build(m))
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("correct index out of range", func(t *testing.T) {
		m := valid
		m.CorrectImageIndex = 2
		_, err := v.Validate(models.ExerciseListening, image.ID, build(m))
		var oob *OutOfBoundsError
		require.ErrorAs(t, err, &oob)
		assert.Equal(t, "correct_image_index", oob.Field)
	})
}

// The image check runs before the metadata shape check, so broken metadata on
// an unknown image still reports the image.
func TestValidateChecksImageBeforeMetadata(t *testing.T) {
	db := newTestDB(t)
	v := newValidator(db)

	_, err := v.Validate(models.ExerciseFillInBlank, uuid.New(), []byte(`not json`))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
