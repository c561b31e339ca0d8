package recommend

import (
	"log/slog"
	"sync"

	"github.com/literahq/litera-server/internal/domain"
)

// Hybrid merges collaborative and content-based results. Both engines run
// concurrently, each capped at limit/2; duplicates keep the higher score.
// A panic in either branch is logged and yields an empty branch rather
// than propagating.
func Hybrid(log *slog.Logger, interactions []*domain.Interaction, books []*domain.Book, userID string, limit int) []domain.Recommendation {
	if limit <= 0 {
		return nil
	}

	half := limit / 2
	if half == 0 {
		half = 1
	}

	var collaborative, content []domain.Recommendation
	var wg sync.WaitGroup
	wg.Add(2)

	run := func(dst *[]domain.Recommendation, engine func() []domain.Recommendation, name string) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil && log != nil {
				log.Error("recommendation engine panicked", "engine", name, "panic", r)
			}
		}()
		*dst = engine()
	}

	go run(&collaborative, func() []domain.Recommendation {
		return Collaborative(interactions, books, userID, half)
	}, "collaborative")
	go run(&content, func() []domain.Recommendation {
		return ContentBased(interactions, books, userID, half)
	}, "content_based")

	wg.Wait()

	// Union by book ID, keeping the entry with the higher score.
	merged := make(map[string]domain.Recommendation, len(collaborative)+len(content))
	for _, rec := range collaborative {
		merged[rec.Book.ID] = rec
	}
	for _, rec := range content {
		if existing, ok := merged[rec.Book.ID]; !ok || rec.Score > existing.Score {
			merged[rec.Book.ID] = rec
		}
	}

	recs := make([]domain.Recommendation, 0, len(merged))
	for _, rec := range merged {
		recs = append(recs, rec)
	}

	sortByScore(recs)
	return truncate(recs, limit)
}
