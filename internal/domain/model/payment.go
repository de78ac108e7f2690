package model

// PaymentConfig holds the destination addresses payment instructions point
// to. Addresses may be empty when the operator has not configured them yet.
type PaymentConfig struct {
	BTCAddress  string
	USDTAddress string
}

// DestinationFor returns the configured address for a payment method.
func (c PaymentConfig) DestinationFor(method PaymentMethod) string {
	if method == PaymentUSDT {
		return c.USDTAddress
	}
	return c.BTCAddress
}

// KeyPair is the persisted encryption key material used by the address
// encryption collaborator. Generated once, never rotated.
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}
