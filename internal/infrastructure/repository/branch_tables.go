package repository

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"gorm.io/gorm"
)

// OrderTableName derives the canonical order table name for a branch code
func OrderTableName(branchCode string) string {
	return "orders_" + strings.ToLower(strings.TrimSpace(branchCode))
}

// BranchTables is the process-wide registry of per-branch order tables.
// A table is migrated lazily the first time its branch is touched and the
// result is cached for the process lifetime. Safe for concurrent use; the
// mutex makes the check-then-create atomic across request goroutines.
type BranchTables struct {
	mu      sync.Mutex
	ensured map[string]struct{}
	migrate func(table string) error
}

// NewBranchTables creates the registry backed by GORM auto-migration
func NewBranchTables(db *gorm.DB) *BranchTables {
	return newBranchTables(func(table string) error {
		return db.Table(table).AutoMigrate(&entity.Order{})
	})
}

func newBranchTables(migrate func(table string) error) *BranchTables {
	return &BranchTables{
		ensured: make(map[string]struct{}),
		migrate: migrate,
	}
}

// Ensure returns the order table name for a branch, migrating the table on
// first use. Repeated calls with the same branch are idempotent and cheap.
func (bt *BranchTables) Ensure(branchCode string) (string, error) {
	table := OrderTableName(branchCode)
	if table == "orders_" {
		return "", fmt.Errorf("empty branch code")
	}

	bt.mu.Lock()
	defer bt.mu.Unlock()

	if _, ok := bt.ensured[table]; ok {
		return table, nil
	}
	if err := bt.migrate(table); err != nil {
		return "", fmt.Errorf("failed to prepare order table %s: %w", table, err)
	}
	bt.ensured[table] = struct{}{}
	return table, nil
}
