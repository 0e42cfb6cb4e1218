// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: semantic-scholar-api-key, openalex-email. The same
// values may come from a dotenv file as SEMANTIC_SCHOLAR_API_KEY and
// OPENALEX_EMAIL.
package secrets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pdiddy/litreview/pkg/types"
)

// Key file names.
const (
	KeySemanticScholar = "semantic-scholar-api-key"
	KeyOpenAlexEmail   = "openalex-email"
)

// envNames maps key file names to their environment variable names.
var envNames = map[string]string{
	KeySemanticScholar: "SEMANTIC_SCHOLAR_API_KEY",
	KeyOpenAlexEmail:   "OPENALEX_EMAIL",
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadEnv reads the known keys from a dotenv file and returns them under
// their key file names. A missing file yields an empty map.
func LoadEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	secrets := make(map[string]string)
	for key, name := range envNames {
		if v := strings.TrimSpace(env[name]); v != "" {
			secrets[key] = v
		}
	}
	return secrets, nil
}

// Resolve merges the secrets directory over the dotenv file: a key file
// wins over the same key in the dotenv file.
func Resolve(dir, envFile string) (map[string]string, error) {
	merged, err := LoadEnv(envFile)
	if err != nil {
		return nil, err
	}
	fromDir, err := Load(dir)
	if err != nil {
		return nil, err
	}
	for k, v := range fromDir {
		merged[k] = v
	}
	return merged, nil
}

// Apply fills search credentials that are not already set.
func Apply(secrets map[string]string, cfg *types.SearchConfig) {
	if cfg.SemanticScholarAPIKey == "" {
		cfg.SemanticScholarAPIKey = secrets[KeySemanticScholar]
	}
	if cfg.OpenAlexEmail == "" {
		cfg.OpenAlexEmail = secrets[KeyOpenAlexEmail]
	}
}
