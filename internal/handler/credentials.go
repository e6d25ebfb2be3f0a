package handler

import (
	"strings"

	"gstflow/internal/domain"
	"gstflow/internal/port"
)

// CredentialFields carries per-request ERP credentials. Callers may omit all
// three to fall back to the server's configured defaults.
type CredentialFields struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	Endpoint  string `json:"endpoint"`
}

// Credentials validates the fields and assembles the token the ERP expects.
// Supplying only one half of the key pair is rejected.
func (f CredentialFields) Credentials() (port.Credentials, error) {
	key := strings.TrimSpace(f.APIKey)
	secret := strings.TrimSpace(f.APISecret)

	if key == "" && secret == "" {
		return port.Credentials{Endpoint: strings.TrimSpace(f.Endpoint)}, nil
	}
	if key == "" || secret == "" || strings.Contains(key, ":") {
		return port.Credentials{}, domain.ErrInvalidAPIToken
	}
	return port.Credentials{
		APIToken: key + ":" + secret,
		Endpoint: strings.TrimSpace(f.Endpoint),
	}, nil
}
