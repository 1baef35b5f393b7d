package packet

import (
	"errors"
	"fmt"

	"github.com/opd-ai/toxpacket/codec"
	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/limits"
)

// Packet kinds, carried as the first byte of the encrypted region.
const (
	KindEchoRequest   byte = 0x00
	KindEchoResponse  byte = 0x01
	KindNodesRequest  byte = 0x02
	KindNodesResponse byte = 0x04
)

// Message is implemented by every decoded packet.
type Message interface {
	Kind() byte
	Header() Header
}

// Header is the plaintext part of the envelope.
type Header struct {
	Sender crypto.PublicKey
	Nonce  crypto.Nonce
}

// Keyring returns the box shared with a sender, or nil for an unknown peer.
type Keyring interface {
	Box(peer crypto.PublicKey) *crypto.CryptoBox
}

// Record positions of the envelope fields.
const (
	senderIndex = 0
	nonceIndex  = 1
)

// envelope wraps payload in the sender/nonce header.
func envelope(payload ...codec.Element) []codec.Element {
	return []codec.Element{
		codec.Bytes("sender", crypto.KeySize),
		codec.Bytes("nonce", crypto.NonceSize),
		codec.Sealed(payload...),
	}
}

// record lays out the header followed by payload values.
func (h Header) record(values ...interface{}) codec.Record {
	sender, nonce := h.Sender, h.Nonce
	return append(codec.Record{sender[:], nonce[:]}, values...)
}

func headerFromRecord(rec codec.Record) Header {
	var h Header
	copy(h.Sender[:], rec.Bytes(senderIndex))
	copy(h.Nonce[:], rec.Bytes(nonceIndex))
	return h
}

// sealWith seals with box, taking the nonce from the record.
func sealWith(box *crypto.CryptoBox) codec.KeyResolver {
	return func(prefix codec.Record) (*crypto.CryptoBox, crypto.Nonce, error) {
		if box == nil {
			return nil, crypto.Nonce{}, errors.New("nil crypto box")
		}
		return box, headerFromRecord(prefix).Nonce, nil
	}
}

// openWith looks up the sender's box in keys.
func openWith(keys Keyring) codec.KeyResolver {
	return func(prefix codec.Record) (*crypto.CryptoBox, crypto.Nonce, error) {
		if keys == nil {
			return nil, crypto.Nonce{}, errors.New("nil keyring")
		}
		h := headerFromRecord(prefix)
		box := keys.Box(h.Sender)
		if box == nil {
			return nil, crypto.Nonce{}, fmt.Errorf("no shared key for sender %X...", h.Sender[:4])
		}
		return box, h.Nonce, nil
	}
}

// openOptions bounds the datagram and opens the sealed payload with keys.
func openOptions(keys Keyring) codec.Options {
	return codec.Options{
		Keys:    openWith(keys),
		MinSize: limits.MinEncryptedPacket,
		MaxSize: limits.MaxUDPPacket,
	}
}
