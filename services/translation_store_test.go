package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTextVersionsStartAtOneAndIncrement(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	svc := NewTranslationService(db, NewImageRegistry(db))

	first, err := svc.AddText(image.ID, "es", "el perro")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)

	second, err := svc.AddText(image.ID, "es", "un perro")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	// Versions are tracked per language, not per image.
	firstFr, err := svc.AddText(image.ID, "fr", "le chien")
	require.NoError(t, err)
	assert.Equal(t, 1, firstFr.Version)
}

func TestAddTextUnknownImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranslationService(db, NewImageRegistry(db))

	_, err := svc.AddText(uuid.New(), "es", "el perro")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "image", notFound.Entity)
}

func TestUpdateTextAppendsWithoutTouchingHistory(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	svc := NewTranslationService(db, NewImageRegistry(db))

	_, err := svc.AddText(image.ID, "es", "el perro")
	require.NoError(t, err)

	updated, err := svc.UpdateText(image.ID, "es", "un perro")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	history, err := svc.GetHistory(image.ID, "es")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Version)
	assert.Equal(t, "el perro", history[0].Text)
	assert.Equal(t, 2, history[1].Version)
	assert.Equal(t, "un perro", history[1].Text)
}

func TestUpdateTextRequiresExistingTranslation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	svc := NewTranslationService(db, NewImageRegistry(db))

	_, err := svc.UpdateText(image.ID, "es", "el perro")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "translation", notFound.Entity)
}

func TestGetLatestReturnsHighestVersion(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	svc := NewTranslationService(db, NewImageRegistry(db))

	for _, text := range []string{"el perro", "un perro", "el perrito"} {
		_, err := svc.AddText(image.ID, "es", text)
		require.NoError(t, err)
	}

	latest, err := svc.GetLatest(image.ID, "es")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 3, latest.Version)
	assert.Equal(t, "el perrito", latest.Text)
}

func TestGetLatestNilWhenKeyHasNoTranslations(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	svc := NewTranslationService(db, NewImageRegistry(db))

	latest, err := svc.GetLatest(image.ID, "es")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestGetLanguages(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	svc := NewTranslationService(db, NewImageRegistry(db))

	_, err := svc.AddText(image.ID, "es", "el perro")
	require.NoError(t, err)
	_, err = svc.AddText(image.ID, "es", "un perro")
	require.NoError(t, err)
	_, err = svc.AddText(image.ID, "fr", "le chien")
	require.NoError(t, err)

	languages, err := svc.GetLanguages(image.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"es", "fr"}, languages)
}

func TestGetAllLatestPicksOneRowPerLanguage(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	svc := NewTranslationService(db, NewImageRegistry(db))

	_, err := svc.AddText(image.ID, "es", "el perro")
	require.NoError(t, err)
	_, err = svc.AddText(image.ID, "es", "un perro")
	require.NoError(t, err)
	_, err = svc.AddText(image.ID, "fr", "le chien")
	require.NoError(t, err)

	latest, err := svc.GetAllLatest(image.ID)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "es", latest[0].LanguageCode)
	assert.Equal(t, 2, latest[0].Version)
	assert.Equal(t, "un perro", latest[0].Text)
	assert.Equal(t, "fr", latest[1].LanguageCode)
	assert.Equal(t, 1, latest[1].Version)
}

func TestFindTextNilWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranslationService(db, NewImageRegistry(db))

	row, err := svc.FindText(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, row)
}
