// Package cli implements chatctl, the operator tool reading and seeding the
// chat store.
package cli

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// Config holds the defaults of every flag, read from CHATCTL_* variables.
type Config struct {
	BadgerFilepath string        `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
	JWTSecret      string        `envconfig:"JWT_SECRET"`
	TokenDuration  time.Duration `envconfig:"TOKEN_DURATION" default:"24h"`
	// CHATCTL_COLOURS colours statuses in tables
	Colours bool `envconfig:"COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("CHATCTL", &cfg)
	return cfg, err
}

// RootOptions holds the global flags.
type RootOptions struct {
	DBPath  string
	Colours bool
	config  Config
}

func NewRootCommand(config Config) *cobra.Command {
	opts := &RootOptions{config: config}

	cmd := &cobra.Command{
		Use:           "chatctl",
		Short:         "Inspect and seed the campus chat store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", config.BadgerFilepath, "path to the Badger directory")
	cmd.PersistentFlags().BoolVar(&opts.Colours, "colours", config.Colours, "colour statuses")

	cmd.AddCommand(NewQueueCommand(opts))
	cmd.AddCommand(NewMessagesCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	return cmd
}

// openReadOnly lets the tool inspect a store held by a running server.
func (o *RootOptions) openReadOnly() (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(o.DBPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.DBPath, err)
	}
	return db, nil
}

func (o *RootOptions) openReadWrite() (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(o.DBPath).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.DBPath, err)
	}
	return db, nil
}
