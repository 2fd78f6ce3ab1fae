// ABOUTME: Persistence for index entries and build metadata
// ABOUTME: Stores vectors as little-endian BLOBs and replaces builds in one transaction
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/harper/race-engineer/internal/models"
)

// IndexStore reads and writes the persisted regulations index
type IndexStore struct {
	db *DB
}

// NewIndexStore creates a new IndexStore
func NewIndexStore(db *DB) *IndexStore {
	return &IndexStore{db: db}
}

// Replace deletes any previous build and writes meta and entries atomically
func (s *IndexStore) Replace(ctx context.Context, meta models.IndexMeta, entries []models.IndexEntry) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM index_entries"); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_meta"); err != nil {
		return fmt.Errorf("clearing meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO index_entries (position, page, content, vector) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Position, e.Page, e.Text, vectorToBlob(e.Vector)); err != nil {
			return fmt.Errorf("inserting entry %d: %w", e.Position, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, build_id, source_path, source_sha256, embedding_model,
			dimension, chunk_size, chunk_overlap, entry_count, schema_version, created_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, meta.BuildID, meta.SourcePath, meta.SourceSHA256, meta.EmbeddingModel,
		meta.Dimension, meta.ChunkSize, meta.ChunkOverlap, len(entries), SchemaVersion, meta.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}

	return tx.Commit()
}

// Meta returns the committed build metadata, or nil when no build has committed
func (s *IndexStore) Meta(ctx context.Context) (*models.IndexMeta, error) {
	var (
		meta    models.IndexMeta
		model   sql.NullString
		version int
		created time.Time
	)

	err := s.db.conn.QueryRowContext(ctx, `
		SELECT build_id, source_path, source_sha256, embedding_model, dimension,
			chunk_size, chunk_overlap, entry_count, schema_version, created_at
		FROM index_meta
		WHERE id = 1
	`).Scan(&meta.BuildID, &meta.SourcePath, &meta.SourceSHA256, &model, &meta.Dimension,
		&meta.ChunkSize, &meta.ChunkOverlap, &meta.EntryCount, &version, &created)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if version != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d (want %d)", version, SchemaVersion)
	}

	meta.EmbeddingModel = model.String
	meta.CreatedAt = created
	return &meta, nil
}

// Entries returns every entry ordered by position
func (s *IndexStore) Entries(ctx context.Context) ([]models.IndexEntry, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT position, page, content, vector
		FROM index_entries
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []models.IndexEntry
	for rows.Next() {
		var (
			e    models.IndexEntry
			blob []byte
		)
		if err := rows.Scan(&e.Position, &e.Page, &e.Text, &blob); err != nil {
			return nil, err
		}
		if len(blob)%8 != 0 {
			return nil, fmt.Errorf("entry %d: vector blob has %d bytes", e.Position, len(blob))
		}
		e.Vector = blobToVector(blob)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the number of stored entries
func (s *IndexStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM index_entries").Scan(&n)
	return n, err
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
