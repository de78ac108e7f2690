package addresscrypt

import (
	"context"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/nacl/box"

	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// Encryptor is the opaque address encryption collaborator. Callers hand it
// a plaintext delivery address and store whatever blob comes back; nothing
// in the order path can decrypt it.
type Encryptor interface {
	Encrypt(ctx context.Context, plaintext string) ([]byte, error)
	PublicKey(ctx context.Context) (string, error)
}

const pemBlockType = "NACL PUBLIC KEY"

// BoxEncryptor seals addresses to a persisted NaCl keypair. The keypair is
// generated on first use and stored through the key repository; decryption
// happens offline with the private key.
type BoxEncryptor struct {
	keys   repository.KeyRepository
	logger *slog.Logger

	mu     sync.Mutex
	public *[32]byte
}

// NewBoxEncryptor creates an encryptor backed by the given key repository.
func NewBoxEncryptor(keys repository.KeyRepository, logger *slog.Logger) *BoxEncryptor {
	return &BoxEncryptor{keys: keys, logger: logger}
}

// Encrypt seals the plaintext to the stored public key.
func (e *BoxEncryptor) Encrypt(ctx context.Context, plaintext string) ([]byte, error) {
	pub, err := e.publicKey(ctx)
	if err != nil {
		return nil, err
	}
	sealed, err := box.SealAnonymous(nil, []byte(plaintext), pub, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: seal: %v", domainErrors.ErrEncryptionUnavailable, err)
	}
	return sealed, nil
}

// PublicKey exports the sealing key as a PEM block users can keep.
func (e *BoxEncryptor) PublicKey(ctx context.Context) (string, error) {
	pub, err := e.publicKey(ctx)
	if err != nil {
		return "", err
	}
	block := pem.EncodeToMemory(&pem.Block{Type: pemBlockType, Bytes: pub[:]})
	return string(block), nil
}

func (e *BoxEncryptor) publicKey(ctx context.Context) (*[32]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.public != nil {
		return e.public, nil
	}

	pair, err := e.keys.LoadKeys(ctx)
	if errors.Is(err, domainErrors.ErrNotFound) {
		pair, err = e.generate(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load keys: %v", domainErrors.ErrEncryptionUnavailable, err)
	}
	if len(pair.PublicKey) != 32 {
		return nil, fmt.Errorf("%w: malformed public key", domainErrors.ErrEncryptionUnavailable)
	}

	var pub [32]byte
	copy(pub[:], pair.PublicKey)
	e.public = &pub
	return e.public, nil
}

func (e *BoxEncryptor) generate(ctx context.Context) (*model.KeyPair, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	pair := &model.KeyPair{PublicKey: pub[:], PrivateKey: priv[:]}
	if err := e.keys.SaveKeys(ctx, pair); err != nil {
		return nil, err
	}
	e.logger.Info("generated address encryption keypair")
	// Save is first-writer-wins; reload in case another instance won.
	return e.keys.LoadKeys(ctx)
}
