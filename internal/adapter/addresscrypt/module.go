package addresscrypt

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// Module wires the address encryption collaborator.
var Module = fx.Provide(newEncryptor)

type encryptorParams struct {
	fx.In

	Keys   repository.KeyRepository
	Logger *slog.Logger
}

func newEncryptor(p encryptorParams) Encryptor {
	return NewBoxEncryptor(p.Keys, p.Logger)
}
