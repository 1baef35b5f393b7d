package crypto

import (
	"errors"
	"runtime"
)

// SecureWipe overwrites sensitive data with zeros. It returns an error if the
// slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)

	return nil
}

// ZeroBytes is SecureWipe without the nil check error.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// WipeKeyPair erases the secret half of kp.
func WipeKeyPair(kp *KeyPair) error {
	if kp == nil {
		return errors.New("cannot wipe nil KeyPair")
	}
	return SecureWipe(kp.Secret[:])
}
