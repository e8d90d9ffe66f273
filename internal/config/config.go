// Package config defines the process-wide configuration this module's
// demo CLI and test harness load from flags and an optional YAML
// bootstrap file, in the same struct-tag idiom
// top-level config and watchtower/config.go use.
package config

import (
	"fmt"
	"os"
	"time"

	flags "github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogDir is the directory rotated logs are written under
	// when LogDir is left unset.
	DefaultLogDir = "logs"

	// DefaultLogFilename names the rotated log file within LogDir.
	DefaultLogFilename = "otxconsensus.log"

	// DefaultMaxLogFileSize is the size, in bytes, at which the log
	// rotator cuts a new file.
	DefaultMaxLogFileSize = 10 * 1024 * 1024

	// DefaultMaxLogFiles is how many rotated log files are retained.
	DefaultMaxLogFiles = 3

	// DefaultStorageRoot is the directory context/account/receipt
	// blobs are written under when StorageRoot is left unset.
	DefaultStorageRoot = "data"

	// DefaultSendTimeout is a reply timeout for notary exchanges. No
	// code in this module applies it: ServerContext.PingNotary waits
	// as long as the context.Context it is handed allows.
	DefaultSendTimeout = 30 * time.Second
)

// NotaryConfig holds the static, per-relationship bootstrap parameters
// that would otherwise need to be supplied on every CLI invocation,
// retry policy and storage root, loaded from an optional notary.yaml
// file.
type NotaryConfig struct {
	// StorageRoot is the directory Context/Account/Receipt blobs live
	// under.
	StorageRoot string `yaml:"storage_root"`

	// RetryLimit is the retry count for a timed-out or invalid-reply
	// send, as loaded from notary.yaml. No code in this module reads
	// it; ServerContext.PingNotary sends exactly once.
	RetryLimit int `yaml:"retry_limit"`

	// RetryBackoff is the delay between retry attempts, as loaded from
	// notary.yaml. No code in this module reads it.
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// DefaultNotaryConfig returns the baseline NotaryConfig applied before
// any notary.yaml override is read.
func DefaultNotaryConfig() NotaryConfig {
	return NotaryConfig{
		StorageRoot:  DefaultStorageRoot,
		RetryLimit:   3,
		RetryBackoff: time.Second,
	}
}

// LoadNotaryConfig reads path as YAML into a NotaryConfig seeded with
// DefaultNotaryConfig. A missing file is not an error: the defaults
// stand as-is, matching the "static bootstrap parameters" role this
// file plays. It overrides, it doesn't gate startup.
func LoadNotaryConfig(path string) (NotaryConfig, error) {
	cfg := DefaultNotaryConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Config is the top-level process configuration for the demo CLI and
// test harness, loaded from command-line flags via go-flags, the same
// struct-tag idiom watchtower/config.go uses.
type Config struct {
	// LocalID is this process's party id within the relationship it
	// stands up.
	LocalID string `long:"localid" description:"local party id"`

	// RemoteID is the counterparty's party id.
	RemoteID string `long:"remoteid" description:"remote party id"`

	// NotaryID identifies the notary arbitrating the relationship.
	NotaryID string `long:"notaryid" description:"notary id"`

	// Listen is the address the demo transport server binds, when
	// running as a notary.
	Listen string `long:"listen" description:"gRPC listen address" default:":7777"`

	// Connect is the address the demo transport client dials, when
	// running as a client.
	Connect string `long:"connect" description:"gRPC address to dial"`

	// NotaryConfigPath points at an optional notary.yaml bootstrap
	// file (storage root, retry policy).
	NotaryConfigPath string `long:"notaryconfig" description:"path to notary.yaml" default:"notary.yaml"`

	// LogDir is where rotated logs are written.
	LogDir string `long:"logdir" description:"directory to write logs in" default:"logs"`

	// LogLevel names the slog level every sub-logger starts at.
	LogLevel string `long:"loglevel" description:"log level (trace|debug|info|warn|error|critical|off)" default:"info"`

	// DebugLevel is an alias kept for parity with the common
	// --debuglevel flag name. It is parsed as a separate field; nothing
	// in this package reconciles it with LogLevel.
	DebugLevel string `long:"debuglevel" description:"alias for loglevel" default:"info"`
}

// DefaultConfig returns a Config with every field set to its default,
// before flag parsing is applied, the same "defaults then override"
// shape watchtower/config.go's DefaultReadTimeout/DefaultWriteTimeout
// constants feed into its zero-value Config.
func DefaultConfig() *Config {
	return &Config{
		Listen:           ":7777",
		NotaryConfigPath: "notary.yaml",
		LogDir:           DefaultLogDir,
		LogLevel:         "info",
		DebugLevel:       "info",
	}
}

// LoadConfig parses args (typically os.Args[1:]) into a Config seeded
// with DefaultConfig.
func LoadConfig(args []string) (*Config, error) {
	cfg := DefaultConfig()
	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return cfg, nil
}
