package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/fretboard-api/internal/api/middleware"
	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/models"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LibraryHandler struct {
	library *services.LibraryService
}

// NewLibraryHandler creates the library handler. db may be nil when the
// service runs without persistence; every endpoint then returns 503.
func NewLibraryHandler(db *gorm.DB) *LibraryHandler {
	var library *services.LibraryService
	if db != nil {
		library = services.NewLibraryService(db)
	}
	return &LibraryHandler{library: library}
}

// requireOwner resolves the library service and the calling owner,
// writing the error response when either is missing.
func (h *LibraryHandler) requireOwner(c *gin.Context) (string, bool) {
	if h.library == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Persistence not configured"})
		return "", false
	}
	ownerID, exists := middleware.GetUserIDFromGateway(c)
	if !exists || ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return ownerID, true
}

func pageSize(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		return 50
	}
	if limit > maxLibraryPageSize {
		return maxLibraryPageSize
	}
	return limit
}

type SaveProgressionRequest struct {
	Title              string   `json:"title" binding:"required"`
	Instrument         string   `json:"instrument"`
	Chords             []string `json:"chords" binding:"required"`
	Fingerings         []string `json:"fingerings" binding:"required"`
	TotalScore         int      `json:"totalScore"`
	AvgTransitionScore float64  `json:"avgTransitionScore"`
}

// SaveProgression stores an optimized progression for the caller
func (h *LibraryHandler) SaveProgression(c *gin.Context) {
	ownerID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	var req SaveProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Chords) == 0 || len(req.Chords) != len(req.Fingerings) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chords and fingerings must be non-empty and the same length"})
		return
	}
	for _, name := range req.Chords {
		if _, err := theory.ParseChord(name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	for _, tab := range req.Fingerings {
		if _, err := fretboard.ParseFingering(tab); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	instrument := req.Instrument
	if instrument == "" {
		instrument = "guitar"
	}

	email, _ := middleware.GetUserEmailFromGateway(c)
	if err := h.library.EnsureOwner(ownerID, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progression"})
		return
	}

	progression := &models.SavedProgression{
		OwnerID:            ownerID,
		Title:              req.Title,
		Instrument:         instrument,
		Chords:             models.JoinList(req.Chords),
		Fingerings:         models.JoinList(req.Fingerings),
		TotalScore:         req.TotalScore,
		AvgTransitionScore: req.AvgTransitionScore,
	}
	if err := h.library.SaveProgression(progression); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progression"})
		return
	}

	c.JSON(http.StatusCreated, progression)
}

// ListProgressions returns the caller's saved progressions
func (h *LibraryHandler) ListProgressions(c *gin.Context) {
	ownerID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	progressions, err := h.library.ListProgressions(ownerID, pageSize(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list progressions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progressions": progressions,
		"count":        len(progressions),
	})
}

// GetProgression returns one saved progression by id
func (h *LibraryHandler) GetProgression(c *gin.Context) {
	ownerID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	progression, err := h.library.GetProgression(ownerID, c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Progression not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get progression"})
		return
	}

	c.JSON(http.StatusOK, progression)
}

// DeleteProgression removes one saved progression by id
func (h *LibraryHandler) DeleteProgression(c *gin.Context) {
	ownerID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	err := h.library.DeleteProgression(ownerID, c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Progression not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete progression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progression deleted"})
}

type SaveFavoriteRequest struct {
	Chord      string `json:"chord" binding:"required"`
	Tab        string `json:"tab" binding:"required"`
	Instrument string `json:"instrument"`
	Score      int    `json:"score"`
}

// SaveFavorite bookmarks a fingering for a chord
func (h *LibraryHandler) SaveFavorite(c *gin.Context) {
	ownerID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	var req SaveFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := theory.ParseChord(req.Chord); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := fretboard.ParseFingering(req.Tab); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instrument := req.Instrument
	if instrument == "" {
		instrument = "guitar"
	}

	email, _ := middleware.GetUserEmailFromGateway(c)
	if err := h.library.EnsureOwner(ownerID, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorite"})
		return
	}

	favorite := &models.FavoriteFingering{
		OwnerID:    ownerID,
		ChordName:  req.Chord,
		Tab:        req.Tab,
		Instrument: instrument,
		Score:      req.Score,
	}
	if err := h.library.SaveFavorite(favorite); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorite"})
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// ListFavorites returns the caller's favorite fingerings
func (h *LibraryHandler) ListFavorites(c *gin.Context) {
	ownerID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	favorites, err := h.library.ListFavorites(ownerID, pageSize(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// DeleteFavorite removes one favorite fingering by id
func (h *LibraryHandler) DeleteFavorite(c *gin.Context) {
	ownerID, ok := h.requireOwner(c)
	if !ok {
		return
	}

	err := h.library.DeleteFavorite(ownerID, c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite deleted"})
}
