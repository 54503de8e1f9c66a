// Package signature validates that a challenge message was signed by the key
// behind a claimed address. Pure computation: no network, no clock.
package signature

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"

	"tokengate/internal/address"
)

// ErrSignatureInvalid means the signature decoded cleanly but was not
// produced by the claimed address's key over the given message.
var ErrSignatureInvalid = errors.New("signature does not match claimed address")

// DecodeError reports a signature that could not be decoded from its
// transport encoding.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode signature: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Verify checks that sig (base64, standard encoding) is a valid ed25519
// signature over the exact bytes of message by the key claimedAddress decodes
// to. The message is never re-serialized: the caller signs and we verify the
// same byte sequence.
//
// Errors: *address.DecodeError for a malformed address, *DecodeError for a
// malformed signature, ErrSignatureInvalid when the predicate fails.
func Verify(message string, sig string, claimedAddress string) error {
	pub, err := address.Decode(claimedAddress)
	if err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return &DecodeError{Err: err}
	}
	if len(raw) != ed25519.SignatureSize {
		return &DecodeError{Err: fmt.Errorf("expected %d bytes, got %d", ed25519.SignatureSize, len(raw))}
	}

	if !ed25519.Verify(ed25519.PublicKey(pub), []byte(message), raw) {
		return ErrSignatureInvalid
	}
	return nil
}
