package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func confirmedSession(id string) *domain.Session {
	sess := domain.NewSession(id, time.Now())
	sess.State = domain.StateConfirmation
	sess.Resource = domain.ResourceVM
	sess.SubscriptionID = "00000000-0000-0000-0000-000000000001"
	sess.ResourceGroup = "demo-rg"
	sess.Region = "eastus"
	sess.Config = domain.Config{
		"name":           "web-01",
		"admin_username": "azureuser",
	}
	return sess
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	// Setup
	underlyingStore := NewMockStore()
	key := generateKey(t)
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	original := confirmedSession("test-session")

	// 1. Save
	if err := secureStore.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The caller's session must keep its plaintext values.
	if original.SubscriptionID != "00000000-0000-0000-0000-000000000001" {
		t.Fatal("Middleware modified the in-memory session")
	}

	// 2. Verify Underlying Store directly (Should be encrypted)
	stored, err := underlyingStore.Load(ctx, "test-session")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if !strings.HasPrefix(stored.SubscriptionID, "enc:") {
		t.Fatalf("Expected sealed subscription id, found: %v", stored.SubscriptionID)
	}
	if user, _ := stored.Config["admin_username"].(string); !strings.HasPrefix(user, "enc:") {
		t.Fatalf("Expected sealed admin_username, found: %v", user)
	}
	if stored.Config["name"] != "web-01" {
		t.Errorf("Non-sensitive fields must stay readable, got: %v", stored.Config["name"])
	}

	// 3. Load via Middleware (Should be decrypted)
	loaded, err := secureStore.Load(ctx, "test-session")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.SubscriptionID != "00000000-0000-0000-0000-000000000001" {
		t.Errorf("Expected plaintext subscription id, got %v", loaded.SubscriptionID)
	}
	if loaded.Config["admin_username"] != "azureuser" {
		t.Errorf("Expected 'azureuser', got %v", loaded.Config["admin_username"])
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	// Setup
	underlyingStore := NewMockStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	// Create middleware with OLD key to save initial state
	mwOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	secureStoreOld := mwOld(underlyingStore)

	ctx := context.Background()
	original := confirmedSession("rotation-session")

	// 1. Save with OLD key
	if err := secureStoreOld.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Load with NEW key (Active) + OLD key (Fallback)
	mwNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	secureStoreNew := mwNew(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, "rotation-session")
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded.SubscriptionID != original.SubscriptionID {
		t.Error("Decryption with fallback key failed")
	}

	// 3. Save again (Now sealed with NEW key)
	if err := secureStoreNew.Save(ctx, loaded); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	// 4. Verify we CANNOT load with just OLD key anymore
	if _, err := secureStoreOld.Load(ctx, "rotation-session"); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_PlaintextPassthrough(t *testing.T) {
	// Sessions saved before encryption was enabled load unchanged.
	underlyingStore := NewMockStore()
	ctx := context.Background()

	plain := confirmedSession("legacy-session")
	if err := underlyingStore.Save(ctx, plain); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	loaded, err := mw(underlyingStore).Load(ctx, "legacy-session")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SubscriptionID != plain.SubscriptionID {
		t.Errorf("Expected passthrough subscription id, got %v", loaded.SubscriptionID)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}
