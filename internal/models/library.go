package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedProgression is one optimized progression a user kept: the chord
// names, the fingering chosen for each chord and the transition totals.
// Chords and fingerings are comma-separated text columns.
type SavedProgression struct {
	ID                 string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID            string         `gorm:"not null;index" json:"owner_id"`
	Title              string         `gorm:"not null" json:"title"`
	Instrument         string         `gorm:"not null" json:"instrument"`
	Chords             string         `gorm:"type:text;not null" json:"chords"`
	Fingerings         string         `gorm:"type:text;not null" json:"fingerings"`
	TotalScore         int            `json:"total_score"`
	AvgTransitionScore float64        `json:"avg_transition_score"`
}

// BeforeCreate assigns a UUID primary key
func (p *SavedProgression) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ChordList returns the chord names stored in the Chords column
func (p *SavedProgression) ChordList() []string {
	return splitList(p.Chords)
}

// FingeringList returns the fingering tabs stored in the Fingerings column
func (p *SavedProgression) FingeringList() []string {
	return splitList(p.Fingerings)
}

// FavoriteFingering is one fingering a user bookmarked for a chord.
type FavoriteFingering struct {
	ID         string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID    string         `gorm:"not null;index" json:"owner_id"`
	ChordName  string         `gorm:"not null" json:"chord_name"`
	Tab        string         `gorm:"not null" json:"tab"`
	Instrument string         `gorm:"not null" json:"instrument"`
	Score      int            `json:"score"`
}

// BeforeCreate assigns a UUID primary key
func (f *FavoriteFingering) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// JoinList serializes values for a comma-separated text column
func JoinList(values []string) string {
	return strings.Join(values, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
