// Package backend selects and constructs the ledger storage implementation
// from configuration.
package backend

import (
	"context"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/store"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the ledger instance and optional cleanup function
type Result struct {
	Ledger  store.Ledger
	Cleanup CleanupFunc
}

// Factory creates ledgers based on configuration
type Factory interface {
	CreateLedger(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for ledger creation
type Config struct {
	Type Type

	// JSON backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string
}

// Type represents the kind of ledger backend
type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
