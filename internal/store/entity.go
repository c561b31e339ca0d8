package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Entity provides generic CRUD operations for any domain type.
//
// Two kinds of secondary index exist: unique indexes map one value to one
// entity (user email), non-unique indexes map one value to many entities
// (loans by user, interactions by book).
type Entity[T any] struct {
	store         *Store
	prefix        string
	uniqueIndexes []uniqueIndex[T]
	indexes       []index[T]
}

// uniqueIndex maps an indexed value to exactly one entity ID.
// Key layout: {prefix}uidx:{name}:{value} -> id
type uniqueIndex[T any] struct {
	name            string
	keyGen          func(*T) []string
	lookupTransform func(string) string // Optional transformation for lookups
}

// index maps an indexed value to many entity IDs.
// Key layout: {prefix}idx:{name}:{value}:{id} -> id
type index[T any] struct {
	name   string
	keyGen func(*T) (id string, values []string)
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{store: s, prefix: prefix}
}

// WithUniqueIndexTransform adds a unique secondary index with a lookup
// transformation applied to search values, enabling case-insensitive
// lookups.
func (e *Entity[T]) WithUniqueIndexTransform(name string, keyGen func(*T) []string, lookupTransform func(string) string) *Entity[T] {
	e.uniqueIndexes = append(e.uniqueIndexes, uniqueIndex[T]{
		name:            name,
		keyGen:          keyGen,
		lookupTransform: lookupTransform,
	})
	return e
}

// WithIndex adds a non-unique secondary index. keyGen returns the entity's
// own ID plus the values to index it under.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) (string, []string)) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen})
	return e
}

// Create creates a new entity with the given ID.
// Returns ErrAlreadyExists if an entity with this ID already exists or a
// unique index value is taken.
func (e *Entity[T]) Create(ctx context.Context, entityID string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := e.prefix + entityID

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		for _, idx := range e.uniqueIndexes {
			for _, value := range idx.keyGen(entity) {
				idxKey := e.uniqueIndexKey(idx.name, value)
				_, err := txn.Get([]byte(idxKey))
				if err == nil {
					return fmt.Errorf("index %s conflict on key %s: %w", idx.name, value, ErrAlreadyExists)
				}
				if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("failed to check index key: %w", err)
				}
			}
		}

		if err := txn.Set([]byte(key), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return e.writeIndexKeys(txn, entityID, entity)
	})
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Get(ctx context.Context, entityID string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := e.prefix + entityID
	var entity T

	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entity); err != nil {
				return fmt.Errorf("failed to unmarshal entity: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &entity, nil
}

// Exists reports whether an entity with the given ID is present.
func (e *Entity[T]) Exists(ctx context.Context, entityID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	err := e.store.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(e.prefix + entityID))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check key: %w", err)
	}
	return true, nil
}

// GetByUniqueIndex retrieves an entity by a unique secondary index.
// If the index has a lookup transform, it is applied to value first.
func (e *Entity[T]) GetByUniqueIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	transformed := value
	for _, idx := range e.uniqueIndexes {
		if idx.name == indexName && idx.lookupTransform != nil {
			transformed = idx.lookupTransform(value)
			break
		}
	}

	idxKey := []byte(e.uniqueIndexKey(indexName, transformed))

	var entityID string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(idxKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entityID = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return e.Get(ctx, entityID)
}

// ListByIndex returns an iterator over all entities indexed under value.
func (e *Entity[T]) ListByIndex(ctx context.Context, indexName, value string) iter.Seq2[*T, error] {
	keyPrefix := []byte(e.indexKeyPrefix(indexName, value))

	return func(yield func(*T, error) bool) {
		_ = e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = keyPrefix

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				var entityID string
				if err := it.Item().Value(func(val []byte) error {
					entityID = string(val)
					return nil
				}); err != nil {
					yield(nil, err)
					return err
				}

				entity, err := e.getInTxn(txn, entityID)
				if err != nil {
					// Index entry pointing at a deleted record; skip it.
					if errors.Is(err, ErrNotFound) {
						continue
					}
					yield(nil, err)
					return err
				}

				if !yield(entity, nil) {
					return nil
				}
			}

			return nil
		})
	}
}

// Update updates an existing entity, rewriting its index keys.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Update(ctx context.Context, entityID string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := e.prefix + entityID

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		var oldEntity T
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get existing key: %w", err)
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &oldEntity)
		}); err != nil {
			return fmt.Errorf("failed to unmarshal old entity: %w", err)
		}

		if err := e.deleteIndexKeys(txn, entityID, &oldEntity); err != nil {
			return err
		}

		// Check unique conflicts, ignoring values the old entity held.
		for _, idx := range e.uniqueIndexes {
			oldValues := make(map[string]bool)
			for _, v := range idx.keyGen(&oldEntity) {
				oldValues[v] = true
			}
			for _, value := range idx.keyGen(entity) {
				if oldValues[value] {
					continue
				}
				idxKey := e.uniqueIndexKey(idx.name, value)
				_, err := txn.Get([]byte(idxKey))
				if err == nil {
					return fmt.Errorf("index %s conflict on key %s: %w", idx.name, value, ErrAlreadyExists)
				}
				if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("failed to check index key: %w", err)
				}
			}
		}

		if err := txn.Set([]byte(key), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return e.writeIndexKeys(txn, entityID, entity)
	})
}

// Delete deletes an entity by ID.
// Idempotent - no error if the entity does not exist.
func (e *Entity[T]) Delete(ctx context.Context, entityID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := e.prefix + entityID

	return e.store.db.Update(func(txn *badger.Txn) error {
		var entity T
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		}); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		if err := e.deleteIndexKeys(txn, entityID, &entity); err != nil {
			return err
		}

		if err := txn.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}

		return nil
	})
}

// List returns an iterator over all entities in the collection.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		_ = e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				// Skip index keys.
				key := string(it.Item().Key())
				remainder := key[len(e.prefix):]
				if strings.HasPrefix(remainder, "idx:") || strings.HasPrefix(remainder, "uidx:") {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&entity, nil) {
					return nil
				}
			}

			return nil
		})
	}
}

// getInTxn reads an entity inside an existing transaction.
func (e *Entity[T]) getInTxn(txn *badger.Txn, entityID string) (*T, error) {
	item, err := txn.Get([]byte(e.prefix + entityID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	var entity T
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entity)
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return &entity, nil
}

// writeIndexKeys writes all secondary index keys for an entity.
func (e *Entity[T]) writeIndexKeys(txn *badger.Txn, entityID string, entity *T) error {
	for _, idx := range e.uniqueIndexes {
		for _, value := range idx.keyGen(entity) {
			idxKey := e.uniqueIndexKey(idx.name, value)
			if err := txn.Set([]byte(idxKey), []byte(entityID)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	for _, idx := range e.indexes {
		ownID, values := idx.keyGen(entity)
		if ownID == "" {
			ownID = entityID
		}
		for _, value := range values {
			if value == "" {
				continue
			}
			idxKey := e.indexKeyPrefix(idx.name, value) + ownID
			if err := txn.Set([]byte(idxKey), []byte(ownID)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	return nil
}

// deleteIndexKeys removes all secondary index keys for an entity.
func (e *Entity[T]) deleteIndexKeys(txn *badger.Txn, entityID string, entity *T) error {
	for _, idx := range e.uniqueIndexes {
		for _, value := range idx.keyGen(entity) {
			if err := txn.Delete([]byte(e.uniqueIndexKey(idx.name, value))); err != nil {
				return fmt.Errorf("failed to delete index key: %w", err)
			}
		}
	}
	for _, idx := range e.indexes {
		ownID, values := idx.keyGen(entity)
		if ownID == "" {
			ownID = entityID
		}
		for _, value := range values {
			if value == "" {
				continue
			}
			if err := txn.Delete([]byte(e.indexKeyPrefix(idx.name, value) + ownID)); err != nil {
				return fmt.Errorf("failed to delete index key: %w", err)
			}
		}
	}
	return nil
}

func (e *Entity[T]) uniqueIndexKey(name, value string) string {
	return e.prefix + "uidx:" + name + ":" + value
}

func (e *Entity[T]) indexKeyPrefix(name, value string) string {
	return e.prefix + "idx:" + name + ":" + value + ":"
}
