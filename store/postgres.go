package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shivraj416/egram/pkg/logger"
)

// PostgresStore keeps the whole document as one JSONB row, for deployments
// where the data file would not survive a redeploy. Same contract as
// FileStore: load everything, save everything.
type PostgresStore struct {
	DB *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// EnsureSchema creates the single-row table used to hold the document.
func (s *PostgresStore) EnsureSchema() error {
	_, err := s.DB.Exec(`CREATE TABLE IF NOT EXISTS site_data (
		id INT PRIMARY KEY CHECK (id = 1),
		content JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		logger.Sugar.Errorf("Failed to ensure site_data schema: %v", err)
	}
	return err
}

func (s *PostgresStore) Load() (*Document, error) {
	var raw []byte
	err := s.DB.QueryRow("SELECT content FROM site_data WHERE id = 1").Scan(&raw)
	if err == sql.ErrNoRows {
		return NewDocument(), nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to load site data: %v", err)
		return nil, fmt.Errorf("failed to load site data: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse site data: %w", err)
	}
	doc.normalize()
	return &doc, nil
}

func (s *PostgresStore) Save(doc *Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	_, err = s.DB.Exec(`INSERT INTO site_data (id, content, updated_at) VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET content = $1, updated_at = NOW()`, raw)
	if err != nil {
		logger.Sugar.Errorf("Failed to save site data: %v", err)
		return fmt.Errorf("failed to save site data: %w", err)
	}
	return nil
}
