// Package prompts provides the externalized LLM prompt templates used by the
// extraction pipeline. Prompts are stored in prompts.json and embedded at
// compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed prompts.json
var promptFile []byte

var (
	catalog     map[string]string
	catalogOnce sync.Once
	catalogErr  error
)

// Get retrieves a prompt template by key.
// Returns an error if the catalog cannot be parsed or the key is not found.
func Get(key string) (string, error) {
	prompts, err := load()
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found", key)
	}

	return prompt, nil
}

// MustGet retrieves a prompt template by key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
// This is a simple template system for prompt customization.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// Keys returns all available prompt keys.
func Keys() ([]string, error) {
	prompts, err := load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	return keys, nil
}

func load() (map[string]string, error) {
	catalogOnce.Do(func() {
		catalogErr = json.Unmarshal(promptFile, &catalog)
		if catalogErr != nil {
			catalogErr = fmt.Errorf("failed to parse prompt catalog: %w", catalogErr)
		}
	})
	return catalog, catalogErr
}
