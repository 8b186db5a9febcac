package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

const defaultSecurePort = 443

// StorageTarget holds the resolved connection parameters for the optional
// S3-compatible artifact mirror. It is built once in main and passed down;
// adapters never re-derive endpoint details from the environment.
type StorageTarget struct {
	Host      string
	Port      int
	UseTLS    bool
	AccessKey string
	SecretKey string
	Bucket    string
}

func (t *StorageTarget) Endpoint() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

func (t *StorageTarget) BaseURL() string {
	scheme := "http"
	if t.UseTLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, t.Host, t.Port)
}

// GetStorageTarget resolves the mirror target from the environment. Absence
// of credentials disables remote upload without disabling local persistence,
// so the caller treats an error here as "no mirror", not as fatal.
func GetStorageTarget() (*StorageTarget, error) {
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set")
	}

	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT must be set")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "podcasts"
	}

	port, err := intFromEnv("MINIO_PORT", 9000)
	if err != nil {
		return nil, err
	}
	useTLS := os.Getenv("MINIO_USE_SSL") == "true"

	target, err := resolveEndpoint(endpoint, port, useTLS)
	if err != nil {
		return nil, err
	}

	target.AccessKey = accessKey
	target.SecretKey = secretKey
	target.Bucket = bucket
	return target, nil
}

// resolveEndpoint applies the single precedence rule for storage endpoints:
// an endpoint string carrying a scheme is parsed as a URL and its
// host/port/TLS override the discrete settings; otherwise the discrete
// settings apply, with TLS forced on when the port is the default secure one.
func resolveEndpoint(endpoint string, port int, useTLS bool) (*StorageTarget, error) {
	parsed, err := url.Parse(endpoint)
	if err == nil && parsed.Scheme != "" && parsed.Host != "" {
		useTLS = parsed.Scheme == "https"
		host := parsed.Hostname()
		resolvedPort := port
		if parsed.Port() != "" {
			resolvedPort, err = strconv.Atoi(parsed.Port())
			if err != nil {
				return nil, fmt.Errorf("invalid port in MINIO_ENDPOINT %q: %w", endpoint, err)
			}
		} else if useTLS {
			resolvedPort = defaultSecurePort
		} else {
			resolvedPort = 80
		}
		return &StorageTarget{Host: host, Port: resolvedPort, UseTLS: useTLS}, nil
	}

	if port == defaultSecurePort {
		useTLS = true
	}
	return &StorageTarget{Host: endpoint, Port: port, UseTLS: useTLS}, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return val, nil
}
