package limits

import (
	"errors"
	"testing"

	"golang.org/x/crypto/nacl/box"
)

func TestEncryptionOverheadMatchesNaCl(t *testing.T) {
	if EncryptionOverhead != box.Overhead {
		t.Errorf("EncryptionOverhead (%d) does not match box.Overhead (%d)", EncryptionOverhead, box.Overhead)
	}
}

func TestConstantConsistency(t *testing.T) {
	if EnvelopeHeaderSize != 56 {
		t.Errorf("EnvelopeHeaderSize = %d, want 56", EnvelopeHeaderSize)
	}
	if MaxEncryptedRegion+EnvelopeHeaderSize != MaxUDPPacket {
		t.Error("encrypted region plus header must fill a datagram exactly")
	}
	if MaxPlaintextRegion != MaxEncryptedRegion-EncryptionOverhead {
		t.Error("plaintext region must account for the authentication tag")
	}
	if MinEncryptedPacket != 72 {
		t.Errorf("MinEncryptedPacket = %d, want 72", MinEncryptedPacket)
	}
}

func TestValidateSizeDatagram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{"empty", 0, ErrPacketEmpty},
		{"one byte", 1, nil},
		{"echo request", 81, nil},
		{"exactly max", MaxUDPPacket, nil},
		{"one over max", MaxUDPPacket + 1, ErrPacketTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(make([]byte, tt.size), MaxUDPPacket)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateSize() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateSize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSizeCustomLimit(t *testing.T) {
	if err := ValidateSize([]byte{1, 2, 3}, 3); err != nil {
		t.Errorf("ValidateSize() unexpected error: %v", err)
	}
	if err := ValidateSize([]byte{1, 2, 3, 4}, 3); !errors.Is(err, ErrPacketTooLarge) {
		t.Errorf("ValidateSize() error = %v, want ErrPacketTooLarge", err)
	}
}

func BenchmarkValidateSize(b *testing.B) {
	packet := make([]byte, 113)
	for i := 0; i < b.N; i++ {
		_ = ValidateSize(packet, MaxUDPPacket)
	}
}
