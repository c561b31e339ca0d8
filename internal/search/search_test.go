package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literahq/litera-server/internal/domain"
)

func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := NewIndex(Options{DataPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return index
}

func testBook(id, title, author, genre string, quantity int) *domain.Book {
	return &domain.Book{
		ID:        id,
		Title:     title,
		Author:    author,
		Genre:     genre,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestNewIndex_Empty(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndexBook(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBook(ctx, testBook("book-1", "The Hobbit", "J.R.R. Tolkien", "Fantasy", 2)))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndexBooks_Batch(t *testing.T) {
	index := setupTestIndex(t)

	books := []*domain.Book{
		testBook("book-1", "Dune", "Frank Herbert", "Sci-Fi", 1),
		testBook("book-2", "Hyperion", "Dan Simmons", "Sci-Fi", 1),
		testBook("book-3", "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1),
	}
	require.NoError(t, index.IndexBooks(books))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearch_TitleMatch(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBooks([]*domain.Book{
		testBook("book-1", "Dune", "Frank Herbert", "Sci-Fi", 1),
		testBook("book-2", "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1),
	}))

	params := DefaultParams()
	params.Query = "dune"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "book-1", result.Hits[0].ID)
	assert.Equal(t, "Dune", result.Hits[0].Title)
}

func TestSearch_AuthorMatch(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBooks([]*domain.Book{
		testBook("book-1", "Dune", "Frank Herbert", "Sci-Fi", 1),
		testBook("book-2", "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1),
	}))

	params := DefaultParams()
	params.Query = "tolkien"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "book-2", result.Hits[0].ID)
}

func TestSearch_FuzzyTypo(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBook(ctx, testBook("book-1", "Hyperion", "Dan Simmons", "Sci-Fi", 1)))

	params := DefaultParams()
	params.Query = "hyperon"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "book-1", result.Hits[0].ID)
}

func TestSearch_GenreFilter(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBooks([]*domain.Book{
		testBook("book-1", "Dune", "Frank Herbert", "Sci-Fi", 1),
		testBook("book-2", "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1),
	}))

	params := DefaultParams()
	params.Genre = "Fantasy"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Equal(t, "book-2", result.Hits[0].ID)
}

func TestSearch_OnlyAvailable(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBooks([]*domain.Book{
		testBook("book-1", "Dune", "Frank Herbert", "Sci-Fi", 0),
		testBook("book-2", "Hyperion", "Dan Simmons", "Sci-Fi", 3),
	}))

	params := DefaultParams()
	params.OnlyAvailable = true
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Equal(t, "book-2", result.Hits[0].ID)
	assert.True(t, result.Hits[0].Available)
}

func TestSearch_GenreFacets(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBooks([]*domain.Book{
		testBook("book-1", "Dune", "Frank Herbert", "Sci-Fi", 1),
		testBook("book-2", "Hyperion", "Dan Simmons", "Sci-Fi", 1),
		testBook("book-3", "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1),
	}))

	result, err := index.Search(ctx, DefaultParams())
	require.NoError(t, err)

	counts := map[string]int{}
	for _, f := range result.Genres {
		counts[f.Value] = f.Count
	}
	assert.Equal(t, 2, counts["Sci-Fi"])
	assert.Equal(t, 1, counts["Fantasy"])
}

func TestDeleteBook(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBook(ctx, testBook("book-1", "Dune", "Frank Herbert", "Sci-Fi", 1)))
	require.NoError(t, index.DeleteBook(ctx, "book-1"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestRebuild_EmptiesIndex(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexBook(ctx, testBook("book-1", "Dune", "Frank Herbert", "Sci-Fi", 1)))
	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
