// Package main provides a tool to import a legacy catalog into the store.
//
// It reads a SQLite database exported from the previous library system and
// bulk-writes books (and, when present, historical interactions) into the
// Badger store, then rebuilds the search index on next server start.
//
// Usage:
//
//	go run ./cmd/seed --sqlite ./legacy.db --data-path ~/Litera/data
//	go run ./cmd/seed --sqlite ./legacy.db --data-path ~/Litera/data --with-interactions
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/id"
	"github.com/literahq/litera-server/internal/logger"
	"github.com/literahq/litera-server/internal/store"
)

var (
	sqlitePath       = flag.String("sqlite", "", "Path to the legacy SQLite catalog (required)")
	dataPath         = flag.String("data-path", "", "Litera data directory (default: ~/Litera/data)")
	withInteractions = flag.Bool("with-interactions", false, "Also import historical borrow interactions")
)

func main() {
	flag.Parse()

	if *sqlitePath == "" {
		fmt.Fprintln(os.Stderr, "--sqlite is required")
		flag.Usage()
		os.Exit(1)
	}

	basePath := *dataPath
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve home directory: %v\n", err)
			os.Exit(1)
		}
		basePath = filepath.Join(home, "Litera", "data")
	}

	log := logger.New(logger.Config{Level: slog.LevelInfo})

	if err := run(context.Background(), log, basePath); err != nil {
		log.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, basePath string) error {
	db, err := sql.Open("sqlite", *sqlitePath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}

	s, err := store.New(filepath.Join(basePath, "db"), log.Logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	booksImported, bookIDs, err := importBooks(ctx, db, s)
	if err != nil {
		return err
	}
	log.Info("Imported books", "count", booksImported)

	if *withInteractions {
		count, err := importInteractions(ctx, db, s, bookIDs)
		if err != nil {
			return err
		}
		log.Info("Imported interactions", "count", count)
	}

	log.Info("Import complete. Run the server and trigger a search reindex.")
	return nil
}

// importBooks copies the legacy books table into the store. Returns a map
// from legacy book ID to new catalog ID for relinking interactions.
func importBooks(ctx context.Context, db *sql.DB, s *store.Store) (int, map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, author,
		       COALESCE(publisher, ''), COALESCE(genre, ''),
		       COALESCE(specifications, ''), COALESCE(material, ''),
		       COALESCE(quantity, 0), purchase_date, COALESCE(cover_url, '')
		FROM books
		ORDER BY id`)
	if err != nil {
		return 0, nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	batch := s.NewBatchWriter()
	defer batch.Cancel()

	bookIDs := make(map[int64]string)
	for rows.Next() {
		var (
			legacyID     int64
			book         domain.Book
			purchaseDate sql.NullString
		)
		if err := rows.Scan(&legacyID, &book.Title, &book.Author,
			&book.Publisher, &book.Genre,
			&book.Specifications, &book.Material,
			&book.Quantity, &purchaseDate, &book.CoverURL); err != nil {
			return 0, nil, fmt.Errorf("scan book row: %w", err)
		}

		book.ID = id.MustGenerate("book")
		if purchaseDate.Valid {
			book.PurchaseDate = parseLegacyDate(purchaseDate.String)
		}
		book.InitTimestamps()

		if err := batch.CreateBook(ctx, &book); err != nil {
			return 0, nil, err
		}
		bookIDs[legacyID] = book.ID
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("iterate books: %w", err)
	}

	count := batch.Count()
	if err := batch.Flush(); err != nil {
		return 0, nil, err
	}
	return count, bookIDs, nil
}

// importInteractions replays legacy borrow history as BORROW interactions
// so the recommendation engine has signal from day one. Legacy rows whose
// book is missing from the export are skipped.
func importInteractions(ctx context.Context, db *sql.DB, s *store.Store, bookIDs map[int64]string) (int, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT user_id, book_id, borrow_date
		FROM loans
		ORDER BY borrow_date`)
	if err != nil {
		return 0, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	batch := s.NewBatchWriter()
	defer batch.Cancel()

	skipped := 0
	for rows.Next() {
		var (
			legacyUserID string
			legacyBookID int64
			borrowDate   sql.NullString
		)
		if err := rows.Scan(&legacyUserID, &legacyBookID, &borrowDate); err != nil {
			return 0, fmt.Errorf("scan loan row: %w", err)
		}

		bookID, ok := bookIDs[legacyBookID]
		if !ok {
			skipped++
			continue
		}

		book, err := s.Books.Get(ctx, bookID)
		if err != nil {
			skipped++
			continue
		}

		inter := domain.NewInteraction(id.MustGenerate("inter"), legacyUserID, book, domain.InteractionBorrow)
		if borrowDate.Valid {
			inter.Timestamp = parseLegacyDate(borrowDate.String)
		}

		if err := batch.CreateInteraction(ctx, inter); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate loans: %w", err)
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d loans referencing missing books\n", skipped)
	}

	count := batch.Count()
	if err := batch.Flush(); err != nil {
		return 0, err
	}
	return count, nil
}

// parseLegacyDate handles the date formats found in legacy exports.
// Unparseable values come back as the zero time.
func parseLegacyDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
