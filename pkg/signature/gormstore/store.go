// Package gormstore persists and loads document signatures in Postgres.
package gormstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/goliatone/go-docgen/pkg/signature"
)

// DocumentSignature is the persistence model for one signature on a
// document.
type DocumentSignature struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DocumentID    string     `gorm:"index;not null"`
	SignerID      *uuid.UUID `gorm:"type:uuid"`
	SignerRole    string
	SignerEmail   string
	SignerName    string
	SignatureData string
	Comment       string
	Status        string `gorm:"index;default:pending"`
	SignedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName keeps the table shared with the application schema.
func (DocumentSignature) TableName() string { return "document_signatures" }

// Store implements signature.Store on a GORM connection.
type Store struct {
	db *gorm.DB
}

var _ signature.Store = (*Store)(nil)

// Open connects to Postgres and returns a Store.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gormstore: open: %w", err)
	}
	return New(db), nil
}

// New wraps an existing connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the signatures table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&DocumentSignature{}); err != nil {
		return fmt.Errorf("gormstore: migrate: %w", err)
	}
	return nil
}

// SignedRecords loads the signed entries for a document, earliest first.
func (s *Store) SignedRecords(ctx context.Context, documentID string) ([]signature.Record, error) {
	var rows []DocumentSignature
	err := s.db.WithContext(ctx).
		Where("document_id = ? AND status = ?", documentID, "signed").
		Order("signed_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gormstore: load signatures for %q: %w", documentID, err)
	}

	records := make([]signature.Record, 0, len(rows))
	for _, row := range rows {
		record := signature.Record{
			SignerRole:    row.SignerRole,
			SignerEmail:   row.SignerEmail,
			SignerName:    row.SignerName,
			SignatureData: row.SignatureData,
			Comment:       row.Comment,
		}
		if row.SignedAt != nil {
			record.SignedAt = *row.SignedAt
		}
		records = append(records, record)
	}
	return records, nil
}

// Sign marks a document as signed by the given signer, stamping the
// signature time.
func (s *Store) Sign(ctx context.Context, documentID string, record signature.Record) (uuid.UUID, error) {
	now := record.SignedAt
	if now.IsZero() {
		now = time.Now()
	}
	row := DocumentSignature{
		ID:            uuid.New(),
		DocumentID:    documentID,
		SignerRole:    record.SignerRole,
		SignerEmail:   record.SignerEmail,
		SignerName:    record.SignerName,
		SignatureData: record.SignatureData,
		Comment:       record.Comment,
		Status:        "signed",
		SignedAt:      &now,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return uuid.Nil, fmt.Errorf("gormstore: sign document %q: %w", documentID, err)
	}
	return row.ID, nil
}
