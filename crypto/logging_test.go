package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSecureFieldHash(t *testing.T) {
	fields := SecureFieldHash([]byte{0xde, 0xad, 0xbe, 0xef, 1, 2, 3, 4, 5, 6}, "peer_key")
	assert.Equal(t, "deadbeef01020304...", fields["peer_key_preview"])
	assert.Equal(t, 10, fields["peer_key_size"])

	short := SecureFieldHash([]byte{0xab}, "nonce")
	assert.Equal(t, "ab", short["nonce_preview"])

	empty := SecureFieldHash(nil, "x")
	assert.Equal(t, "nil", empty["x_preview"])
}

func TestLoggerHelperFields(t *testing.T) {
	var buf bytes.Buffer
	original := logrus.StandardLogger().Out
	level := logrus.GetLevel()
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.DebugLevel)
	defer func() {
		logrus.SetOutput(original)
		logrus.SetLevel(level)
	}()

	NewLogger("TestLoggerHelperFields").
		WithField("peer", "abc").
		WithError(errors.New("boom"), "decrypt").
		Warn("something happened")

	out := buf.String()
	assert.Contains(t, out, "function=TestLoggerHelperFields")
	assert.Contains(t, out, "package=crypto")
	assert.Contains(t, out, "peer=abc")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "something happened")
}
