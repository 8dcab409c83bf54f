// Package config loads the TOML repository configuration stored in
// .gitcas/config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/internal/objects"
)

// Config is the repository configuration.
type Config struct {
	User User `toml:"user"`
	Core Core `toml:"core"`
}

// User is the identity recorded as author and committer of new commits.
type User struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Core holds storage settings.
type Core struct {
	// Compression is the zlib level for new objects, -1 through 9.
	Compression int `toml:"compression"`

	// CacheSize bounds the decoded object cache.
	CacheSize int `toml:"cache_size"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		User: User{
			Name:  constants.DefaultUserName,
			Email: constants.DefaultUserEmail,
		},
		Core: Core{
			Compression: constants.DefaultCompressionLevel,
			CacheSize:   constants.DefaultCacheSize,
		},
	}
}

// Path returns the config file path for the repository at repoPath.
func Path(repoPath string) string {
	return filepath.Join(repoPath, constants.Gitcas, constants.Config)
}

// Load reads the repository config. Keys absent from the file keep their
// defaults, and a missing file yields Default().
func Load(repoPath string) (Config, error) {
	cfg := Default()

	path := Path(repoPath)
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Core.Compression < -1 || c.Core.Compression > 9 {
		return fmt.Errorf("core.compression must be between -1 and 9, got %d", c.Core.Compression)
	}
	if c.Core.CacheSize < 1 {
		return fmt.Errorf("core.cache_size must be positive, got %d", c.Core.CacheSize)
	}
	if c.User.Name == "" || c.User.Email == "" {
		return errors.New("user.name and user.email must be set")
	}
	return nil
}

// Write stores cfg at the repository config path.
func Write(repoPath string, cfg Config) error {
	file, err := os.OpenFile(Path(repoPath), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePerms)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return file.Close()
}

// Signature returns the configured identity stamped with when.
func (c Config) Signature(when time.Time) objects.Signature {
	return objects.Signature{
		Name:  c.User.Name,
		Email: c.User.Email,
		When:  when,
	}
}

// StoreOptions returns the object store options implied by the config.
func (c Config) StoreOptions() []objects.StoreOption {
	return []objects.StoreOption{objects.WithCompressionLevel(c.Core.Compression)}
}
