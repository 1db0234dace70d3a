package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequencesOf(t *testing.T, response map[string]interface{}) []map[string]interface{} {
	t.Helper()

	raw, ok := response["sequences"].([]interface{})
	require.True(t, ok, "Response should have 'sequences' array")

	sequences := make([]map[string]interface{}, 0, len(raw))
	for _, entry := range raw {
		seq, ok := entry.(map[string]interface{})
		require.True(t, ok)
		sequences = append(sequences, seq)
	}
	return sequences
}

func TestGenerateProgressionBasic(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{
		"chords": []string{"C", "G", "Am", "F"},
	})
	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, []interface{}{"C", "G", "Am", "F"}, response["chords"])
	assert.Equal(t, "Guitar", response["instrument"])

	sequences := sequencesOf(t, response)
	require.NotEmpty(t, sequences)
	assert.LessOrEqual(t, len(sequences), 3, "Default limit should cap sequences")
	assert.Equal(t, float64(len(sequences)), response["count"])

	first := sequences[0]
	assert.Equal(t, []interface{}{"C", "G", "Am", "F"}, first["chords"])

	fingerings := first["fingerings"].([]interface{})
	require.Len(t, fingerings, 4, "One fingering per chord")
	for _, entry := range fingerings {
		fr := entry.(map[string]interface{})
		assert.NotEmpty(t, fr["tab"])
		assert.Contains(t, fr["diagram"], "Score:")
	}

	transitions := first["transitions"].([]interface{})
	require.Len(t, transitions, 3, "One transition per chord pair")

	sum := 0.0
	firstTransition := transitions[0].(map[string]interface{})
	assert.Equal(t, "C", firstTransition["fromChord"])
	assert.Equal(t, "G", firstTransition["toChord"])
	for _, entry := range transitions {
		tr := entry.(map[string]interface{})
		sum += tr["score"].(float64)

		from := tr["fromFingering"].(map[string]interface{})
		assert.NotEmpty(t, from["tab"])
		_, hasDiagram := from["diagram"]
		assert.False(t, hasDiagram, "Nested fingerings should not repeat diagrams")
	}
	assert.Equal(t, sum, first["totalScore"].(float64), "Total should sum transition scores")
	assert.InDelta(t, sum/3, first["avgTransitionScore"].(float64), 0.01)
}

func TestGenerateProgressionSortedByScore(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{
		"chords": []string{"C", "Am"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	sequences := sequencesOf(t, decodeBody(t, w))
	require.NotEmpty(t, sequences)
	for i := 1; i < len(sequences); i++ {
		assert.GreaterOrEqual(t, sequences[i-1]["totalScore"], sequences[i]["totalScore"])
	}
}

func TestGenerateProgressionRespectsLimit(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{
		"chords":  []string{"C", "G"},
		"options": map[string]interface{}{"limit": 1},
	})
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, float64(1), response["count"])
	assert.Len(t, sequencesOf(t, response), 1)
}

func TestGenerateProgressionDropsUnknownNames(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{
		"chords": []string{"C", "Zz9", "G"},
	})
	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, []interface{}{"C", "G"}, response["chords"])

	sequences := sequencesOf(t, response)
	require.NotEmpty(t, sequences)
	assert.Equal(t, []interface{}{"C", "G"}, sequences[0]["chords"])
	assert.Len(t, sequences[0]["fingerings"].([]interface{}), 2)
	assert.Len(t, sequences[0]["transitions"].([]interface{}), 1)
}

func TestGenerateProgressionWithCapo(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{
		"chords": []string{"D", "A"},
		"capo":   2,
	})
	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, []interface{}{"D", "A"}, response["chords"])
	assert.Equal(t, []interface{}{"C", "G"}, response["shapes"])
	assert.Equal(t, float64(2), response["capo"])

	sequences := sequencesOf(t, response)
	require.NotEmpty(t, sequences)
	assert.Equal(t, []interface{}{"D", "A"}, sequences[0]["chords"],
		"Sequences should carry the requested names, not the searched shapes")

	transitions := sequences[0]["transitions"].([]interface{})
	require.Len(t, transitions, 1)
	tr := transitions[0].(map[string]interface{})
	assert.Equal(t, "D", tr["fromChord"])
	assert.Equal(t, "A", tr["toChord"])
}

func TestGenerateProgressionEmptyList(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{
		"chords": []string{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "No chords provided", response["error"])
}

func TestGenerateProgressionMissingChords(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateProgressionTooManyChords(t *testing.T) {
	router := setupTestRouter()

	chords := make([]string, 17)
	for i := range chords {
		chords[i] = "C"
	}

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{
		"chords": chords,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "Too many chords. Maximum: 16", response["error"])
}

func TestGenerateProgressionAllUnknownNames(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/progressions", map[string]interface{}{
		"chords": []string{"Zz", "Qq"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, float64(0), response["count"])
	assert.Empty(t, response["sequences"])
}
