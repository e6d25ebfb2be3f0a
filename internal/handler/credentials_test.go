package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstflow/internal/domain"
	"gstflow/internal/handler"
)

func TestCredentials_KeyPair(t *testing.T) {
	creds, err := handler.CredentialFields{
		APIKey:    " mykey ",
		APISecret: "mysecret",
		Endpoint:  "https://erp.example.com/api/resource/Sales%20Invoice",
	}.Credentials()

	require.NoError(t, err)
	assert.Equal(t, "mykey:mysecret", creds.APIToken)
	assert.Equal(t, "https://erp.example.com/api/resource/Sales%20Invoice", creds.Endpoint)
}

func TestCredentials_EmptyFallsBackToDefaults(t *testing.T) {
	creds, err := handler.CredentialFields{}.Credentials()

	require.NoError(t, err)
	assert.Empty(t, creds.APIToken)
	assert.Empty(t, creds.Endpoint)
}

func TestCredentials_HalfPairRejected(t *testing.T) {
	_, err := handler.CredentialFields{APIKey: "mykey"}.Credentials()
	assert.ErrorIs(t, err, domain.ErrInvalidAPIToken)

	_, err = handler.CredentialFields{APISecret: "mysecret"}.Credentials()
	assert.ErrorIs(t, err, domain.ErrInvalidAPIToken)
}

func TestCredentials_ColonInKeyRejected(t *testing.T) {
	_, err := handler.CredentialFields{APIKey: "my:key", APISecret: "s"}.Credentials()
	assert.ErrorIs(t, err, domain.ErrInvalidAPIToken)
}
