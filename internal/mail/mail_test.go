package mail_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/internal/mail"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func TestAddress_String(t *testing.T) {
	assert.Equal(t, `"Equipe Plann.er" <oi@plann.er>`, mail.Address{Name: "Equipe Plann.er", Address: "oi@plann.er"}.String())
	assert.Equal(t, "bob@example.com", mail.Address{Address: "bob@example.com"}.String())
}

func TestNew_SelectsTransport(t *testing.T) {
	logger := discardLogger()

	m, err := mail.New(mail.Config{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &mail.LogMailer{}, m)

	m, err = mail.New(mail.Config{Transport: "SMTP", SMTPHost: "localhost", SMTPPort: 1025}, logger)
	require.NoError(t, err)
	assert.IsType(t, &mail.SMTPMailer{}, m)

	m, err = mail.New(mail.Config{Transport: "resend", ResendAPIKey: "re_test"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &mail.ResendMailer{}, m)
}

func TestNew_RejectsIncompleteConfig(t *testing.T) {
	logger := discardLogger()

	_, err := mail.New(mail.Config{Transport: "smtp"}, logger)
	assert.ErrorContains(t, err, "SMTP host")

	_, err = mail.New(mail.Config{Transport: "resend"}, logger)
	assert.ErrorContains(t, err, "API key")

	_, err = mail.New(mail.Config{Transport: "pigeon"}, logger)
	assert.ErrorContains(t, err, "pigeon")
}

func TestLogMailer_Send_LogsPreview(t *testing.T) {
	var buf bytes.Buffer
	m := mail.NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)))

	id, err := m.Send(context.Background(), mail.Message{
		From:    mail.Address{Name: "Equipe Plann.er", Address: "oi@plann.er"},
		To:      mail.Address{Name: "Alice", Address: "alice@example.com"},
		Subject: "Hello",
		HTML:    "<p>hi</p>",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "email preview", entry["msg"])
	assert.Equal(t, id, entry["message_id"])
	assert.Equal(t, `"Alice" <alice@example.com>`, entry["to"])
	assert.Equal(t, "<p>hi</p>", entry["html"])
}
