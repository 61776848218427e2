package repository

import (
	"errors"
	"sync"
	"testing"
)

func TestOrderTableName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"BD", "orders_bd"},
		{"bd", "orders_bd"},
		{" KP ", "orders_kp"},
		{"Mg2", "orders_mg2"},
	}
	for _, tt := range tests {
		if got := OrderTableName(tt.code); got != tt.want {
			t.Errorf("OrderTableName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestEnsureMigratesOnce(t *testing.T) {
	calls := 0
	bt := newBranchTables(func(table string) error {
		calls++
		return nil
	})

	for i := 0; i < 5; i++ {
		table, err := bt.Ensure("BD")
		if err != nil {
			t.Fatalf("Ensure: %v", err)
		}
		if table != "orders_bd" {
			t.Errorf("table = %q, want orders_bd", table)
		}
	}
	// Same key lower-cased resolves to the same table
	if _, err := bt.Ensure("bd"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	if calls != 1 {
		t.Errorf("migrate called %d times, want 1", calls)
	}
}

func TestEnsureFailureIsRetried(t *testing.T) {
	calls := 0
	bt := newBranchTables(func(table string) error {
		calls++
		if calls == 1 {
			return errors.New("connection refused")
		}
		return nil
	})

	if _, err := bt.Ensure("BD"); err == nil {
		t.Fatal("expected error on first Ensure")
	}
	// A failed migration must not be cached as done
	if _, err := bt.Ensure("BD"); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if calls != 2 {
		t.Errorf("migrate called %d times, want 2", calls)
	}
}

func TestEnsureEmptyBranchCode(t *testing.T) {
	bt := newBranchTables(func(table string) error { return nil })
	if _, err := bt.Ensure("  "); err == nil {
		t.Error("expected error for empty branch code")
	}
}

func TestEnsureConcurrent(t *testing.T) {
	calls := 0
	bt := newBranchTables(func(table string) error {
		calls++
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := bt.Ensure("BD"); err != nil {
				t.Errorf("Ensure: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("migrate called %d times under concurrency, want 1", calls)
	}
}
