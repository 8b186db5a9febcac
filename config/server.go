package config

import "os"

type ServerConfig struct {
	Port     string
	AudioDir string
	BaseURL  string
}

func GetServerConfig() *ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	audioDir := os.Getenv("AUDIO_DIR")
	if audioDir == "" {
		audioDir = "audio_files"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}
	return &ServerConfig{
		Port:     port,
		AudioDir: audioDir,
		BaseURL:  baseURL,
	}
}
