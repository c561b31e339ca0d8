package domain

// RecommendationType identifies which engine produced a recommendation.
type RecommendationType string

// Recommendation types.
const (
	RecCollaborative RecommendationType = "COLLABORATIVE"
	RecContentBased  RecommendationType = "CONTENT_BASED"
	RecPopular       RecommendationType = "POPULAR"
	RecTrending      RecommendationType = "TRENDING"
	RecPersonal      RecommendationType = "PERSONAL"
)

// Recommendation is an ephemeral, per-request ranking entry. Never
// persisted; Score is normalized to [0,1].
type Recommendation struct {
	Book   *Book              `json:"book"`
	Score  float64            `json:"score"`
	Type   RecommendationType `json:"type"`
	Reason string             `json:"reason"`
}
