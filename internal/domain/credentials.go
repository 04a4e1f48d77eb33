package domain

import (
	"fmt"
	"strings"
)

type Credential struct {
	Name      string
	EnvVar    string
	SecretKey string
	// Required credentials are fatal when missing; optional ones only turn a
	// feature off.
	Required bool
}

var (
	GeminiCredential     = Credential{Name: "gemini", EnvVar: "GEMINI_API_KEY", SecretKey: "mira/gemini_api_key", Required: true}
	ElevenLabsCredential = Credential{Name: "elevenlabs", EnvVar: "ELEVEN_API_KEY", SecretKey: "mira/eleven_api_key"}
)

var Credentials = []Credential{GeminiCredential, ElevenLabsCredential}

func CredentialByName(name string) (Credential, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, credential := range Credentials {
		if credential.Name == normalized {
			return credential, nil
		}
	}

	return Credential{}, fmt.Errorf("unknown credential %q (expected gemini or elevenlabs)", name)
}

type CredentialSource string

const (
	CredentialSourceNone  CredentialSource = "missing"
	CredentialSourceEnv   CredentialSource = "env"
	CredentialSourceStore CredentialSource = "store"
)
