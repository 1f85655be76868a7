package tests

import (
	"context"
	"testing"
	"time"

	"github.com/provisio/provisio/pkg/ports"
)

// LockerContractTest is a reusable test suite that verifies if an adapter complies with ports.DistributedLocker.
func LockerContractTest(t *testing.T, locker ports.DistributedLocker) {
	t.Helper()
	ctx := context.Background()
	ttl := 5 * time.Second

	// 1. Test Lock and Unlock (Success)
	t.Run("Lock_Release", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, "contract-key", ttl)
		if err != nil {
			t.Fatalf("unexpected error acquiring lock: %v", err)
		}
		if unlock == nil {
			t.Fatal("expected non-nil unlock func")
		}
		if err := unlock(ctx); err != nil {
			t.Fatalf("unexpected error releasing lock: %v", err)
		}

		// Reacquisition after release must succeed promptly.
		unlock2, err := locker.Lock(ctx, "contract-key", ttl)
		if err != nil {
			t.Fatalf("unexpected error reacquiring lock: %v", err)
		}
		_ = unlock2(ctx)
	})

	// 2. Test mutual exclusion on the same key
	t.Run("Mutual_Exclusion", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, "contract-excl", ttl)
		if err != nil {
			t.Fatalf("unexpected error acquiring lock: %v", err)
		}

		acquired := make(chan struct{})
		go func() {
			u, err := locker.Lock(ctx, "contract-excl", ttl)
			if err == nil {
				_ = u(ctx)
			}
			close(acquired)
		}()

		select {
		case <-acquired:
			t.Error("second holder acquired the lock while it was held")
		case <-time.After(100 * time.Millisecond):
			// Still blocked, as expected.
		}

		if err := unlock(ctx); err != nil {
			t.Fatalf("unexpected error releasing lock: %v", err)
		}

		select {
		case <-acquired:
			// Released lock was handed over.
		case <-time.After(2 * time.Second):
			t.Error("second holder never acquired the lock after release")
		}
	})

	// 3. Test independence of distinct keys
	t.Run("Distinct_Keys", func(t *testing.T) {
		unlockA, err := locker.Lock(ctx, "contract-a", ttl)
		if err != nil {
			t.Fatalf("unexpected error acquiring lock a: %v", err)
		}
		defer func() { _ = unlockA(ctx) }()

		done := make(chan error, 1)
		go func() {
			u, err := locker.Lock(ctx, "contract-b", ttl)
			if err == nil {
				_ = u(ctx)
			}
			done <- err
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("unexpected error acquiring lock b: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("lock on a distinct key blocked")
		}
	})
}
