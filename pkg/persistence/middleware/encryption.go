package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte

	// ConfigFields are the configuration keys to protect at rest.
	// Defaults to admin_username when empty.
	ConfigFields []string
}

// encryptedPrefix marks a sealed value. Values without it pass through
// unchanged, so encryption can be enabled on stores with existing sessions.
const encryptedPrefix = "enc:"

type encryptionMiddleware struct {
	next   ports.SessionStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals the sensitive
// session fields (subscription ID plus the configured config fields) with
// AES-GCM before they reach the underlying store.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	if len(config.ConfigFields) == 0 {
		config.ConfigFields = []string{"admin_username"}
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, sess *domain.Session) error {
	// Clone so the engine's in-memory session keeps its plaintext values.
	cloned := sess.Clone()

	if cloned.SubscriptionID != "" {
		sealed, err := m.seal(cloned.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to encrypt subscription id: %w", err)
		}
		cloned.SubscriptionID = sealed
	}

	for _, field := range m.config.ConfigFields {
		raw, ok := cloned.Config[field].(string)
		if !ok || raw == "" || strings.HasPrefix(raw, encryptedPrefix) {
			continue
		}
		sealed, err := m.seal(raw)
		if err != nil {
			return fmt.Errorf("failed to encrypt config field %q: %w", field, err)
		}
		cloned.Config[field] = sealed
	}

	return m.next.Save(ctx, cloned)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	plain, err := m.open(sess.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt subscription id: %w", err)
	}
	sess.SubscriptionID = plain

	for _, field := range m.config.ConfigFields {
		raw, ok := sess.Config[field].(string)
		if !ok {
			continue
		}
		plain, err := m.open(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt config field %q: %w", field, err)
		}
		sess.Config[field] = plain
	}

	return sess, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// seal encrypts a single value and encodes it for storage.
func (m *encryptionMiddleware) seal(value string) (string, error) {
	ciphertext, err := encrypt([]byte(value), m.config.ActiveKey)
	if err != nil {
		return "", err
	}
	return encryptedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// open reverses seal. Unsealed values are returned as-is.
func (m *encryptionMiddleware) open(value string) (string, error) {
	if !strings.HasPrefix(value, encryptedPrefix) {
		return value, nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, encryptedPrefix))
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
