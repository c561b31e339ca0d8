package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/literahq/litera-server/internal/domain"
)

func TestInteractionWeight(t *testing.T) {
	tests := []struct {
		name  string
		inter *domain.Interaction
		want  float64
	}{
		{"borrow", &domain.Interaction{Type: domain.InteractionBorrow}, 1.0},
		{"return", &domain.Interaction{Type: domain.InteractionReturn}, 0.5},
		{"favorite", &domain.Interaction{Type: domain.InteractionFavorite}, 0.3},
		{"high rating", &domain.Interaction{Type: domain.InteractionRate, Rating: 5}, 0.4},
		{"rating at threshold", &domain.Interaction{Type: domain.InteractionRate, Rating: 4}, 0.4},
		{"low rating", &domain.Interaction{Type: domain.InteractionRate, Rating: 3.9}, 0.1},
		{"long view caps at 0.2", &domain.Interaction{Type: domain.InteractionView, DurationMs: 600000}, 0.2},
		{"short view scales", &domain.Interaction{Type: domain.InteractionView, DurationMs: 150000}, 0.1},
		{"search", &domain.Interaction{Type: domain.InteractionSearch}, 0.05},
		{"unknown type", &domain.Interaction{Type: "WINK"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, InteractionWeight(tt.inter), 1e-9)
		})
	}
}

func TestBuildUserBookScores_SumsPerPair(t *testing.T) {
	// One BORROW + one RATE(5) + one VIEW(600000ms) = 1.0 + 0.4 + 0.2 = 1.6
	interactions := []*domain.Interaction{
		{UserID: "u1", BookID: "b1", Type: domain.InteractionBorrow},
		{UserID: "u1", BookID: "b1", Type: domain.InteractionRate, Rating: 5},
		{UserID: "u1", BookID: "b1", Type: domain.InteractionView, DurationMs: 600000},
		{UserID: "u2", BookID: "b1", Type: domain.InteractionSearch},
	}

	matrix := BuildUserBookScores(interactions)

	assert.InDelta(t, 1.6, matrix["u1"]["b1"], 1e-9)
	assert.InDelta(t, 0.05, matrix["u2"]["b1"], 1e-9)
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := map[string]float64{"b1": 1.0, "b2": 0.5, "b3": 0.3}
	b := map[string]float64{"b1": 0.4, "b3": 1.2, "b4": 0.9}

	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-12)
}

func TestSimilarity_NoCommonBooks(t *testing.T) {
	a := map[string]float64{"b1": 1.0}
	b := map[string]float64{"b2": 1.0}

	assert.Zero(t, Similarity(a, b))
}

func TestSimilarity_Bounded(t *testing.T) {
	// Identical heavy histories: base ratio 1.0, boost pushes past 1.0,
	// the cap brings it back.
	a := map[string]float64{"b1": 2.0, "b2": 2.0, "b3": 2.0, "b4": 2.0, "b5": 2.0, "b6": 2.0}

	sim := Similarity(a, a)
	assert.LessOrEqual(t, sim, 1.0)
	assert.Greater(t, sim, 0.0)

	b := map[string]float64{"b1": 0.1, "b9": 5.0}
	sim = Similarity(a, b)
	assert.GreaterOrEqual(t, sim, 0.0)
	assert.LessOrEqual(t, sim, 1.0)
}

func TestSimilarity_EmptyMaps(t *testing.T) {
	assert.Zero(t, Similarity(nil, map[string]float64{"b1": 1}))
	assert.Zero(t, Similarity(map[string]float64{}, map[string]float64{}))
}
