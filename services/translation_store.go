package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

// TranslationService is the append-only store of per-language texts for
// images. Every write inserts a new version; nothing is ever updated or
// deleted, so the full history for an (image, language) key stays intact.
type TranslationService struct {
	db     *gorm.DB
	images ImageRegistry
}

func NewTranslationService(db *gorm.DB, images ImageRegistry) *TranslationService {
	return &TranslationService{db: db, images: images}
}

// AddText inserts the next version for the (imageID, languageCode) key,
// starting at 1. The image must exist.
func (s *TranslationService) AddText(imageID uuid.UUID, languageCode, text string) (*models.ImageText, error) {
	ok, err := s.images.Exists(imageID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Entity: "image", ID: imageID.String()}
	}
	return s.appendVersion(imageID, languageCode, text)
}

// UpdateText appends a new version for a key that already has at least one
// translation. There is no in-place mutation.
func (s *TranslationService) UpdateText(imageID uuid.UUID, languageCode, text string) (*models.ImageText, error) {
	latest, err := s.GetLatest(imageID, languageCode)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, &NotFoundError{Entity: "translation", ID: imageID.String() + "/" + languageCode}
	}
	return s.appendVersion(imageID, languageCode, text)
}

// appendVersion computes max(version)+1 and inserts, both inside one
// transaction. On postgres the current latest row is locked FOR UPDATE so
// two writers on the same key cannot pick the same version; the unique
// index on (image_id, language_code, version) backstops the first-version
// race, which surfaces as a ConflictError.
func (s *TranslationService) appendVersion(imageID uuid.UUID, languageCode, text string) (*models.ImageText, error) {
	var created models.ImageText
	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("image_id = ? AND language_code = ?", imageID, languageCode).
			Order("version DESC").Limit(1)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var rows []models.ImageText
		if err := q.Find(&rows).Error; err != nil {
			return err
		}

		next := 1
		if len(rows) > 0 {
			next = rows[0].Version + 1
		}

		created = models.ImageText{
			ImageID:      imageID,
			LanguageCode: languageCode,
			Text:         text,
			Version:      next,
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &ConflictError{Reason: "concurrent write assigned the same translation version, retry"}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetLatest returns the highest-version row for the key, or nil when the key
// has no translations.
func (s *TranslationService) GetLatest(imageID uuid.UUID, languageCode string) (*models.ImageText, error) {
	var rows []models.ImageText
	err := s.db.Where("image_id = ? AND language_code = ?", imageID, languageCode).
		Order("version DESC").Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// GetHistory returns every version for the key, ascending.
func (s *TranslationService) GetHistory(imageID uuid.UUID, languageCode string) ([]models.ImageText, error) {
	var rows []models.ImageText
	err := s.db.Where("image_id = ? AND language_code = ?", imageID, languageCode).
		Order("version ASC").Find(&rows).Error
	return rows, err
}

// GetLanguages returns the distinct languages that have at least one
// translation for the image.
func (s *TranslationService) GetLanguages(imageID uuid.UUID) ([]string, error) {
	var languages []string
	err := s.db.Model(&models.ImageText{}).
		Where("image_id = ?", imageID).
		Distinct().Order("language_code ASC").
		Pluck("language_code", &languages).Error
	return languages, err
}

// GetAllLatest returns the latest row per language present for the image.
func (s *TranslationService) GetAllLatest(imageID uuid.UUID) ([]models.ImageText, error) {
	var rows []models.ImageText
	err := s.db.Where("image_id = ?", imageID).
		Order("language_code ASC").Order("version DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	latest := make([]models.ImageText, 0, len(rows))
	seen := make(map[string]bool)
	for _, row := range rows {
		if seen[row.LanguageCode] {
			continue
		}
		seen[row.LanguageCode] = true
		latest = append(latest, row)
	}
	return latest, nil
}

// FindText looks a translation row up by primary key; nil when absent.
func (s *TranslationService) FindText(textID uuid.UUID) (*models.ImageText, error) {
	var row models.ImageText
	if err := s.db.First(&row, "id = ?", textID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
