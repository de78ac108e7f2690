package addresscrypt

// Re-exports for the external test package.
const PemBlockType = pemBlockType

type EncryptorParams = encryptorParams

var NewEncryptor = newEncryptor
