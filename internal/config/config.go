package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// profileNameRegex validates profile names.
// Names must start with a lowercase letter or digit, followed by lowercase
// letters, digits, underscores, or hyphens. Maximum length is 63 characters.
var profileNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateProfileName checks if a profile name is valid.
// Valid names:
//   - Start with a lowercase letter or digit
//   - Contain only lowercase letters, digits, underscores, or hyphens
//   - Are between 1 and 63 characters long
//   - Do not contain path separators or special characters
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if !profileNameRegex.MatchString(name) {
		return fmt.Errorf("invalid profile name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

const (
	DefaultConfigDir = "/etc/cellar"
	DefaultStateDir  = "/var/lib/cellar"

	// DefaultProfileName is the profile used when none is given.
	DefaultProfileName = "default"
)

// Config is the host configuration from config.toml.
type Config struct {
	StateDir       string `toml:"state_dir"`
	StoreDir       string `toml:"store_dir"`
	ProfilesDir    string `toml:"profiles_dir"`
	DefaultProfile string `toml:"default_profile"`
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if c.DefaultProfile != "" {
		if err := ValidateProfileName(c.DefaultProfile); err != nil {
			return err
		}
	}
	return nil
}

// applyDefaults fills unset fields from the built-in defaults.
func (c *Config) applyDefaults() {
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir
	}
	if c.StoreDir == "" {
		c.StoreDir = filepath.Join(c.StateDir, "store")
	}
	if c.ProfilesDir == "" {
		c.ProfilesDir = filepath.Join(c.StateDir, "profiles")
	}
	if c.DefaultProfile == "" {
		c.DefaultProfile = DefaultProfileName
	}
}

// Load loads the host configuration from config.toml in configDir.
// A missing file is not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	var cfg Config

	configPath := filepath.Join(configDir, "config.toml")
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read host config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid host config: %w", err)
	}

	return &cfg, nil
}

// Paths holds the resolved directory layout.
type Paths struct {
	ConfigDir   string
	StateDir    string
	StoreDir    string // store objects live here
	DBDir       string // per-object metadata documents
	ProfilesDir string // profile symlinks and generation links
}

// DefaultPaths returns the default path configuration.
func DefaultPaths() *Paths {
	return PathsFor(&Config{
		StateDir:    DefaultStateDir,
		StoreDir:    filepath.Join(DefaultStateDir, "store"),
		ProfilesDir: filepath.Join(DefaultStateDir, "profiles"),
	})
}

// PathsFor derives the directory layout from a loaded config.
func PathsFor(cfg *Config) *Paths {
	return &Paths{
		ConfigDir:   DefaultConfigDir,
		StateDir:    cfg.StateDir,
		StoreDir:    cfg.StoreDir,
		DBDir:       filepath.Join(cfg.StateDir, "db"),
		ProfilesDir: cfg.ProfilesDir,
	}
}

// ProfileLink resolves a profile name to its symlink path inside
// profilesDir. The name is validated first, so a crafted name can never
// escape the profiles directory. The returned path is the link itself,
// not its target.
func ProfileLink(profilesDir, name string) (string, error) {
	if err := ValidateProfileName(name); err != nil {
		return "", err
	}

	return filepath.Join(profilesDir, name), nil
}
