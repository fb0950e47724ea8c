package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

// ExerciseValidator checks an exercise's image reference and metadata shape
// before anything is persisted. It only reads; the caller decides what to do
// with the typed metadata it returns.
//
// Checks run in a fixed order and stop at the first failure: the image must
// exist and have at least one translation in any language, then the metadata
// must match the shape of the exercise type.
type ExerciseValidator struct {
	images       ImageRegistry
	translations *TranslationService
}

func NewExerciseValidator(images ImageRegistry, translations *TranslationService) *ExerciseValidator {
	return &ExerciseValidator{images: images, translations: translations}
}

func (v *ExerciseValidator) Validate(exerciseType models.ExerciseType, imageID uuid.UUID, rawMetadata []byte) (models.ExerciseMetadata, error) {
	ok, err := v.images.Exists(imageID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Entity: "image", ID: imageID.String()}
	}

	languages, err := v.translations.GetLanguages(imageID)
	if err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		return nil, &ReferentialIntegrityError{Entity: "image", ID: imageID.String(), Reason: "no associated text"}
	}

	switch exerciseType {
	case models.ExerciseImageText, models.ExerciseMatchingPairs, models.ExerciseFillInBlank, models.ExerciseListening:
	default:
		return nil, &ValidationError{Field: "exercise_type", Reason: "unknown exercise type"}
	}

	metadata, err := models.ParseExerciseMetadata(exerciseType, rawMetadata)
	if err != nil {
		return nil, &ValidationError{Field: "metadata", Reason: err.Error()}
	}

	switch m := metadata.(type) {
	case models.ImageTextMetadata:
		return m, nil
	case models.MatchingPairsMetadata:
		return m, v.validateMatchingPairs(m)
	case models.FillInBlankMetadata:
		return m, v.validateFillInBlank(m)
	case models.ListeningComprehensionMetadata:
		return m, v.validateListening(m)
	default:
		return nil, &ValidationError{Field: "exercise_type", Reason: "unknown exercise type"}
	}
}

func (v *ExerciseValidator) validateMatchingPairs(m models.MatchingPairsMetadata) error {
	if len(m.Pairs) < 2 {
		return &ValidationError{Field: "pairs", Reason: "minimum 2 required"}
	}
	for _, pair := range m.Pairs {
		ok, err := v.images.Exists(pair.ImageID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Entity: "image", ID: pair.ImageID.String()}
		}
		// pair.TextID is not checked against the translation store here:
		// matching a text to a learner needs a language context this layer
		// does not have.
	}
	return nil
}

func (v *ExerciseValidator) validateFillInBlank(m models.FillInBlankMetadata) error {
	if strings.TrimSpace(m.Sentence) == "" {
		return &ValidationError{Field: "sentence", Reason: "required"}
	}
	tokens := strings.Fields(m.Sentence)
	if m.BlankIndex < 0 || m.BlankIndex >= len(tokens) {
		return &OutOfBoundsError{Field: "blank_index"}
	}
	if strings.TrimSpace(m.CorrectAnswer) == "" {
		return &ValidationError{Field: "correct_answer", Reason: "required"}
	}
	if len(m.Distractors) < 2 {
		return &ValidationError{Field: "distractors", Reason: "minimum 2 required"}
	}
	for _, d := range m.Distractors {
		if strings.TrimSpace(d) == "" {
			return &ValidationError{Field: "distractors", Reason: "entries must be non-empty"}
		}
	}
	return nil
}

func (v *ExerciseValidator) validateListening(m models.ListeningComprehensionMetadata) error {
	if len(m.ImageOptions) < 2 {
		return &ValidationError{Field: "image_options", Reason: "minimum 2 required"}
	}
	for _, optionID := range m.ImageOptions {
		ok, err := v.images.Exists(optionID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Entity: "image", ID: optionID.String()}
		}
	}
	if m.CorrectImageIndex < 0 || m.CorrectImageIndex >= len(m.ImageOptions) {
		return &OutOfBoundsError{Field: "correct_image_index"}
	}
	// m.AudioTextID is not cross-checked against the translation store, same
	// language-context gap as matching pairs.
	return nil
}
