package addresscrypt_test

import (
	"context"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/crypto/nacl/box"

	"github.com/mkruglov/marketbot/internal/adapter/addresscrypt"
	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	testhelpers "github.com/mkruglov/marketbot/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEncryptGeneratesAndPersistsKeypair(t *testing.T) {
	repo := &testhelpers.KeyRepositoryStub{}
	enc := addresscrypt.NewBoxEncryptor(repo, discardLogger())

	blob, err := enc.Encrypt(context.Background(), "221B Baker Street")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("expected non-empty ciphertext")
	}
	if repo.Keys == nil {
		t.Fatal("expected keypair persisted on first use")
	}
	if len(repo.Keys.PublicKey) != 32 || len(repo.Keys.PrivateKey) != 32 {
		t.Fatalf("unexpected key sizes %d/%d", len(repo.Keys.PublicKey), len(repo.Keys.PrivateKey))
	}
}

func TestEncryptRoundTripsWithPrivateKey(t *testing.T) {
	repo := &testhelpers.KeyRepositoryStub{}
	enc := addresscrypt.NewBoxEncryptor(repo, discardLogger())
	ctx := context.Background()

	const address = "5 Admiralty Way, Lagos"
	blob, err := enc.Encrypt(ctx, address)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	var pub, priv [32]byte
	copy(pub[:], repo.Keys.PublicKey)
	copy(priv[:], repo.Keys.PrivateKey)

	plain, ok := box.OpenAnonymous(nil, blob, &pub, &priv)
	if !ok {
		t.Fatal("ciphertext did not open with stored keypair")
	}
	if string(plain) != address {
		t.Fatalf("decrypted %q, want %q", plain, address)
	}
}

func TestEncryptReusesStoredKeypair(t *testing.T) {
	repo := &testhelpers.KeyRepositoryStub{}
	first := addresscrypt.NewBoxEncryptor(repo, discardLogger())
	if _, err := first.Encrypt(context.Background(), "x"); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	stored := repo.Keys
	second := addresscrypt.NewBoxEncryptor(repo, discardLogger())
	if _, err := second.Encrypt(context.Background(), "y"); err != nil {
		t.Fatalf("encrypt with existing keys: %v", err)
	}
	if repo.Keys != stored {
		t.Fatal("keypair must not be regenerated")
	}
}

func TestEncryptErrorsWrapEncryptionUnavailable(t *testing.T) {
	repo := &testhelpers.KeyRepositoryStub{LoadErr: fmt.Errorf("db down")}
	enc := addresscrypt.NewBoxEncryptor(repo, discardLogger())

	if _, err := enc.Encrypt(context.Background(), "addr"); !errors.Is(err, domainErrors.ErrEncryptionUnavailable) {
		t.Fatalf("expected ErrEncryptionUnavailable, got %v", err)
	}

	repo = &testhelpers.KeyRepositoryStub{SaveErr: fmt.Errorf("db down")}
	enc = addresscrypt.NewBoxEncryptor(repo, discardLogger())
	if _, err := enc.Encrypt(context.Background(), "addr"); !errors.Is(err, domainErrors.ErrEncryptionUnavailable) {
		t.Fatalf("expected ErrEncryptionUnavailable on save failure, got %v", err)
	}
}

func TestPublicKeyPEMExport(t *testing.T) {
	repo := &testhelpers.KeyRepositoryStub{}
	enc := addresscrypt.NewBoxEncryptor(repo, discardLogger())

	exported, err := enc.PublicKey(context.Background())
	if err != nil {
		t.Fatalf("public key: %v", err)
	}

	block, rest := pem.Decode([]byte(exported))
	if block == nil {
		t.Fatal("expected a PEM block")
	}
	if len(rest) != 0 {
		t.Fatalf("trailing bytes after PEM block: %q", rest)
	}
	if block.Type != addresscrypt.PemBlockType {
		t.Fatalf("unexpected block type %q", block.Type)
	}
	if len(block.Bytes) != 32 {
		t.Fatalf("unexpected key length %d", len(block.Bytes))
	}
}

func TestNewEncryptorModule(t *testing.T) {
	enc := addresscrypt.NewEncryptor(addresscrypt.EncryptorParams{Keys: &testhelpers.KeyRepositoryStub{}, Logger: discardLogger()})
	if _, ok := enc.(*addresscrypt.BoxEncryptor); !ok {
		t.Fatalf("expected *addresscrypt.BoxEncryptor, got %T", enc)
	}
}
