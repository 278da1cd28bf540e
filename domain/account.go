package domain

import (
	"encoding/hex"
	"fmt"
)

// AccountKeyLen is the length of an on-ledger account identifier in bytes.
const AccountKeyLen = 32

// AccountKey is a 32-byte ledger account identifier (token mint, vault, market).
// Comparable, so it can be used as a map key.
type AccountKey [AccountKeyLen]byte

// String returns the hex representation of the key.
func (k AccountKey) String() string {
	return hex.EncodeToString(k[:])
}

// IsZero returns true if the key is all zeroes.
func (k AccountKey) IsZero() bool {
	return k == AccountKey{}
}

// MarshalText implements encoding.TextMarshaler so keys render as hex in JSON.
func (k AccountKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AccountKey) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseAccountKey parses a hex-encoded 32-byte account key.
func ParseAccountKey(s string) (AccountKey, error) {
	var key AccountKey

	raw, err := hex.DecodeString(s)
	if err != nil {
		return AccountKey{}, err
	}

	if len(raw) != AccountKeyLen {
		return AccountKey{}, fmt.Errorf("account key must be %d bytes, got %d", AccountKeyLen, len(raw))
	}

	copy(key[:], raw)
	return key, nil
}
