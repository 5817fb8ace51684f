package signature

import (
	"context"
	"sort"
	"time"
)

// Record is one persisted signature for a document.
type Record struct {
	SignerRole    string
	SignerEmail   string
	SignerName    string
	SignatureData string
	Comment       string
	SignedAt      time.Time
}

// Store loads the signed records for a document. Implementations must
// return only records with status "signed", ordered by SignedAt ascending;
// the injector re-sorts anyway so a non-conforming implementation still
// resolves ties the same way.
type Store interface {
	SignedRecords(ctx context.Context, documentID string) ([]Record, error)
}

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(ctx context.Context, documentID string) ([]Record, error)

func (f StoreFunc) SignedRecords(ctx context.Context, documentID string) ([]Record, error) {
	return f(ctx, documentID)
}

// matchRecord finds the record for a field: exact signer role first, then
// exact signer email. Among several candidates the earliest SignedAt wins.
func matchRecord(records []Record, field Field) (Record, bool) {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SignedAt.Before(sorted[j].SignedAt)
	})

	if field.SignerRole != "" {
		for _, record := range sorted {
			if record.SignerRole == field.SignerRole {
				return record, true
			}
		}
	}
	if field.SignerEmail != "" {
		for _, record := range sorted {
			if record.SignerEmail == field.SignerEmail {
				return record, true
			}
		}
	}
	return Record{}, false
}
