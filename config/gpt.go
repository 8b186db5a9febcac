package config

import (
	"fmt"
	"os"
)

const defaultGptApiUrl = "https://api.openai.com/v1/chat/completions"
const defaultGptModel = "gpt-4o-mini"

type GptConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

// GetGptConfig fails when no API key is configured; the caller wires an
// unconfigured generator in that case instead of aborting startup, so the
// missing credential surfaces as a configuration error at stage time.
func GetGptConfig() (*GptConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}
	apiUrl := os.Getenv("GPT_API_URL")
	if apiUrl == "" {
		apiUrl = defaultGptApiUrl
	}
	model := os.Getenv("GPT_MODEL")
	if model == "" {
		model = defaultGptModel
	}
	return &GptConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}
