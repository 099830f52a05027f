package notify

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewatch/pagewatch/internal/config"
)

func TestNewMailer(t *testing.T) {
	mailer, err := NewMailer(
		config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587},
		config.Credentials{Account: "alerts@example.com", Password: "secret"},
	)

	require.NoError(t, err)
	assert.Equal(t, "alerts@example.com", mailer.address)
}

func TestVerifyUnreachableServer(t *testing.T) {
	// Grab a port that is guaranteed to be closed by the time we dial it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	mailer, err := NewMailer(
		config.MailConfig{SMTPHost: "127.0.0.1", SMTPPort: port},
		config.Credentials{Account: "alerts@example.com", Password: "secret"},
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = mailer.Verify(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify smtp transport")
}
