package recommend

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literahq/litera-server/internal/domain"
)

func testCatalog() []*domain.Book {
	return []*domain.Book{
		{ID: "b1", Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"},
		{ID: "b2", Title: "Dune Messiah", Author: "Frank Herbert", Genre: "Sci-Fi"},
		{ID: "b3", Title: "Emma", Author: "Jane Austen", Genre: "Romance"},
		{ID: "b4", Title: "Persuasion", Author: "Jane Austen", Genre: "Romance"},
	}
}

func borrow(userID, bookID string) *domain.Interaction {
	return &domain.Interaction{UserID: userID, BookID: bookID, Type: domain.InteractionBorrow}
}

func TestCollaborative_SurfacesNeighborBooks(t *testing.T) {
	// userA and userB share book1; userB also borrowed book2, which
	// userA has never touched.
	interactions := []*domain.Interaction{
		borrow("userA", "b1"),
		borrow("userB", "b1"),
		borrow("userB", "b2"),
	}

	recs := Collaborative(interactions, testCatalog(), "userA", 10)

	require.Len(t, recs, 1)
	assert.Equal(t, "b2", recs[0].Book.ID)
	assert.Greater(t, recs[0].Score, 0.0)
	assert.LessOrEqual(t, recs[0].Score, 1.0)
	assert.Equal(t, domain.RecCollaborative, recs[0].Type)
	assert.NotEmpty(t, recs[0].Reason)
}

func TestCollaborative_NoHistoryFallsBackToPopular(t *testing.T) {
	interactions := []*domain.Interaction{
		borrow("other1", "b1"),
		borrow("other2", "b1"),
		borrow("other2", "b3"),
	}

	recs := Collaborative(interactions, testCatalog(), "newcomer", 10)

	require.NotEmpty(t, recs)
	for _, rec := range recs {
		assert.Equal(t, domain.RecPopular, rec.Type)
	}
	// Most borrowed book leads with normalized score 1.0.
	assert.Equal(t, "b1", recs[0].Book.ID)
	assert.InDelta(t, 1.0, recs[0].Score, 1e-9)
}

func TestCollaborative_ExcludesAlreadySeen(t *testing.T) {
	interactions := []*domain.Interaction{
		borrow("userA", "b1"),
		borrow("userA", "b2"),
		borrow("userB", "b1"),
		borrow("userB", "b2"),
	}

	recs := Collaborative(interactions, testCatalog(), "userA", 10)
	assert.Empty(t, recs, "neighbor has nothing the target has not already seen")
}

func TestContentBased_MatchesGenreAndAuthor(t *testing.T) {
	interactions := []*domain.Interaction{
		{UserID: "userA", BookID: "b1", Type: domain.InteractionBorrow, Genre: "Sci-Fi", Author: "Frank Herbert"},
		{UserID: "userA", BookID: "b1", Type: domain.InteractionFavorite, Genre: "Sci-Fi", Author: "Frank Herbert"},
	}

	recs := ContentBased(interactions, testCatalog(), "userA", 10)

	require.Len(t, recs, 1)
	assert.Equal(t, "b2", recs[0].Book.ID, "only unseen book matching genre/author")
	// Single favorite genre and author: full shares, 0.7 + 0.3.
	assert.InDelta(t, 1.0, recs[0].Score, 1e-9)
	assert.Equal(t, domain.RecContentBased, recs[0].Type)
}

func TestContentBased_EmptyWithoutHistory(t *testing.T) {
	assert.Nil(t, ContentBased(nil, testCatalog(), "userA", 10))

	// Interactions without genre/author metadata produce no favorites.
	interactions := []*domain.Interaction{
		{UserID: "userA", BookID: "b1", Type: domain.InteractionBorrow},
	}
	assert.Nil(t, ContentBased(interactions, testCatalog(), "userA", 10))
}

func TestContentBased_GenreShareScoring(t *testing.T) {
	// Two sci-fi interactions, one romance: sci-fi share is 2/3.
	interactions := []*domain.Interaction{
		{UserID: "u", BookID: "b1", Type: domain.InteractionView, Genre: "Sci-Fi"},
		{UserID: "u", BookID: "b1", Type: domain.InteractionBorrow, Genre: "Sci-Fi"},
		{UserID: "u", BookID: "b3", Type: domain.InteractionView, Genre: "Romance"},
	}

	recs := ContentBased(interactions, testCatalog(), "u", 10)
	require.NotEmpty(t, recs)

	byID := make(map[string]float64)
	for _, rec := range recs {
		byID[rec.Book.ID] = rec.Score
	}
	assert.InDelta(t, 2.0/3.0*0.7, byID["b2"], 1e-9)
	assert.InDelta(t, 1.0/3.0*0.7, byID["b4"], 1e-9)
}

func TestPopular_NormalizesByMax(t *testing.T) {
	interactions := []*domain.Interaction{
		borrow("u1", "b1"),
		borrow("u2", "b1"),
		borrow("u3", "b3"),
	}

	recs := Popular(interactions, testCatalog(), 10)

	require.Len(t, recs, 2)
	assert.Equal(t, "b1", recs[0].Book.ID)
	assert.InDelta(t, 1.0, recs[0].Score, 1e-9)
	assert.InDelta(t, 0.5, recs[1].Score, 1e-9)
	assert.Equal(t, "Borrowed 2 times", recs[0].Reason)
}

func TestPopular_EmptyLog(t *testing.T) {
	assert.Nil(t, Popular(nil, testCatalog(), 10))
}

func TestHybrid_NoDuplicateBooks(t *testing.T) {
	// userA's history makes b2 reachable by both engines: userB's
	// pattern surfaces it collaboratively and its genre/author match
	// surfaces it content-based.
	interactions := []*domain.Interaction{
		{UserID: "userA", BookID: "b1", Type: domain.InteractionBorrow, Genre: "Sci-Fi", Author: "Frank Herbert"},
		borrow("userB", "b1"),
		borrow("userB", "b2"),
	}

	recs := Hybrid(slog.New(slog.DiscardHandler), interactions, testCatalog(), "userA", 10)

	seen := make(map[string]bool)
	for _, rec := range recs {
		assert.False(t, seen[rec.Book.ID], "duplicate book %s", rec.Book.ID)
		seen[rec.Book.ID] = true
	}
	assert.True(t, seen["b2"])
}

func TestHybrid_KeepsHigherScoreOnDuplicate(t *testing.T) {
	interactions := []*domain.Interaction{
		{UserID: "userA", BookID: "b1", Type: domain.InteractionBorrow, Genre: "Sci-Fi", Author: "Frank Herbert"},
		borrow("userB", "b1"),
		borrow("userB", "b2"),
	}

	half := 5
	collab := Collaborative(interactions, testCatalog(), "userA", half)
	content := ContentBased(interactions, testCatalog(), "userA", half)
	recs := Hybrid(slog.New(slog.DiscardHandler), interactions, testCatalog(), "userA", 10)

	want := make(map[string]float64)
	for _, rec := range append(collab, content...) {
		if rec.Score > want[rec.Book.ID] {
			want[rec.Book.ID] = rec.Score
		}
	}

	for _, rec := range recs {
		assert.InDelta(t, want[rec.Book.ID], rec.Score, 1e-9, rec.Book.ID)
	}
}

func TestHybrid_RespectsLimit(t *testing.T) {
	interactions := []*domain.Interaction{
		{UserID: "userA", BookID: "b1", Type: domain.InteractionBorrow, Genre: "Sci-Fi", Author: "Frank Herbert"},
		{UserID: "userA", BookID: "b3", Type: domain.InteractionView, Genre: "Romance", DurationMs: 300000},
		borrow("userB", "b1"),
		borrow("userB", "b2"),
		borrow("userB", "b4"),
	}

	recs := Hybrid(slog.New(slog.DiscardHandler), interactions, testCatalog(), "userA", 2)
	assert.LessOrEqual(t, len(recs), 2)

	// Sorted descending.
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
}
