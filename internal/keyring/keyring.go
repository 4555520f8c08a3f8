// Package keyring stores provider API keys in the system keychain.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "alkime-coach"

// APIKey is a keychain entry holding one provider's key.
type APIKey string

const (
	Gemini    APIKey = "gemini-api-key"
	OpenAI    APIKey = "openai-api-key"
	Anthropic APIKey = "anthropic-api-key"
)

// AllAPIKeys returns every known entry, in display order.
func AllAPIKeys() []APIKey {
	return []APIKey{Gemini, OpenAI, Anthropic}
}

// DisplayName is the provider name used on the command line.
func (k APIKey) DisplayName() string {
	switch k {
	case Gemini:
		return "gemini"
	case OpenAI:
		return "openai"
	case Anthropic:
		return "anthropic"
	default:
		return string(k)
	}
}

// EnvVar is the environment variable that overrides the stored key.
func (k APIKey) EnvVar() string {
	switch k {
	case Gemini:
		return "GEMINI_API_KEY"
	case OpenAI:
		return "OPENAI_API_KEY"
	case Anthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

func Get(apiKey APIKey) (string, error) {
	value, err := keyring.Get(serviceName, string(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to get %s from keychain: %w", apiKey.DisplayName(), err)
	}

	return value, nil
}

func Set(apiKey APIKey, value string) error {
	if err := keyring.Set(serviceName, string(apiKey), value); err != nil {
		return fmt.Errorf("failed to set %s in keychain: %w", apiKey.DisplayName(), err)
	}

	return nil
}

// Delete removes a stored key. Removing a missing key is not an error.
func Delete(apiKey APIKey) error {
	err := keyring.Delete(serviceName, string(apiKey))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete %s from keychain: %w", apiKey.DisplayName(), err)
	}

	return nil
}

func IsSet(apiKey APIKey) bool {
	_, err := keyring.Get(serviceName, string(apiKey))

	return err == nil
}

// Resolve returns value when non-empty, otherwise the stored key or "".
func Resolve(apiKey APIKey, value string) string {
	if value != "" {
		return value
	}

	secret, err := Get(apiKey)
	if err != nil {
		return ""
	}

	return secret
}

// APIKeyFromServiceName maps a provider name (e.g., "openai") to its entry.
func APIKeyFromServiceName(name string) (APIKey, error) {
	for _, k := range AllAPIKeys() {
		if k.DisplayName() == name {
			return k, nil
		}
	}

	return "", fmt.Errorf("unknown service: %s", name)
}
