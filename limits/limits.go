// Package limits provides centralized packet size limits for the Tox wire
// codec. This ensures consistent validation across encoding and decoding.
package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxUDPPacket is the largest datagram a Tox node sends or accepts
	// (toxcore's MAX_UDP_PACKET_SIZE).
	MaxUDPPacket = 2048

	// PublicKeySize is the size of the sender key that opens every packet.
	PublicKeySize = 32

	// NonceSize is the size of the nonce that follows the sender key.
	NonceSize = 24

	// EnvelopeHeaderSize is the plaintext header of an encrypted packet:
	// sender public key followed by nonce.
	EnvelopeHeaderSize = PublicKeySize + NonceSize

	// EncryptionOverhead is the Poly1305 tag added by box sealing
	// (golang.org/x/crypto/nacl/box.Overhead).
	EncryptionOverhead = 16

	// MaxEncryptedRegion is the largest encrypted payload that still fits in
	// one datagram after the envelope header.
	MaxEncryptedRegion = MaxUDPPacket - EnvelopeHeaderSize

	// MaxPlaintextRegion is MaxEncryptedRegion without the authentication tag.
	MaxPlaintextRegion = MaxEncryptedRegion - EncryptionOverhead

	// MinEncryptedPacket is the smallest datagram that can hold an
	// envelope: the header plus an authentication tag over an empty payload.
	MinEncryptedPacket = EnvelopeHeaderSize + EncryptionOverhead

	// MaxSentNodes is the most node records a nodes response may carry.
	MaxSentNodes = 4
)

var (
	// ErrPacketEmpty indicates an empty packet was provided
	ErrPacketEmpty = errors.New("empty packet")

	// ErrPacketTooSmall indicates a packet shorter than its fixed header
	ErrPacketTooSmall = errors.New("packet too small")

	// ErrPacketTooLarge indicates a packet exceeds the maximum size
	ErrPacketTooLarge = errors.New("packet too large")
)

// ValidateSize validates data against an arbitrary maximum size.
func ValidateSize(data []byte, maxSize int) error {
	if len(data) == 0 {
		return ErrPacketEmpty
	}
	if len(data) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrPacketTooLarge, len(data), maxSize)
	}
	return nil
}
