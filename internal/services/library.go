package services

import (
	"errors"

	"github.com/Conceptual-Machines/fretboard-api/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a library entry does not exist or
// belongs to another owner.
var ErrNotFound = errors.New("library entry not found")

type LibraryService struct {
	db *gorm.DB
}

func NewLibraryService(db *gorm.DB) *LibraryService {
	return &LibraryService{db: db}
}

// EnsureOwner records the identity behind a library write the first
// time it appears. Repeat calls find the existing row.
func (s *LibraryService) EnsureOwner(gatewayID, email string) error {
	if gatewayID == "" {
		return nil
	}
	user := models.User{GatewayID: gatewayID, Email: email}
	return s.db.Where("gateway_id = ?", gatewayID).FirstOrCreate(&user).Error
}

// SaveProgression stores a progression for an owner
func (s *LibraryService) SaveProgression(p *models.SavedProgression) error {
	return s.db.Create(p).Error
}

// ListProgressions returns an owner's saved progressions, newest first
func (s *LibraryService) ListProgressions(ownerID string, limit int) ([]models.SavedProgression, error) {
	var progressions []models.SavedProgression
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&progressions).Error; err != nil {
		return nil, err
	}
	return progressions, nil
}

// GetProgression fetches one saved progression scoped to its owner
func (s *LibraryService) GetProgression(ownerID, id string) (*models.SavedProgression, error) {
	var progression models.SavedProgression
	err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&progression).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &progression, nil
}

// DeleteProgression removes one saved progression scoped to its owner
func (s *LibraryService) DeleteProgression(ownerID, id string) error {
	result := s.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.SavedProgression{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveFavorite stores a favorite fingering for an owner
func (s *LibraryService) SaveFavorite(f *models.FavoriteFingering) error {
	return s.db.Create(f).Error
}

// ListFavorites returns an owner's favorite fingerings, newest first
func (s *LibraryService) ListFavorites(ownerID string, limit int) ([]models.FavoriteFingering, error) {
	var favorites []models.FavoriteFingering
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// DeleteFavorite removes one favorite fingering scoped to its owner
func (s *LibraryService) DeleteFavorite(ownerID, id string) error {
	result := s.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.FavoriteFingering{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
