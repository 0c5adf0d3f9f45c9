package types

import (
	"errors"
	"path/filepath"
	"strings"
)

// DefaultDatabaseFile is the store file name used when Config.DatabaseFile is empty.
const DefaultDatabaseFile = "diamonds.db"

// Config holds the location of the store file for Backend.Attach.
type Config struct {
	DataDir      string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	DatabaseFile string `json:"database_file" yaml:"database_file" mapstructure:"database_file"`
}

// Config validation errors.
var (
	ErrDatabaseFileInvalid = errors.New("database file must be a bare file name")
)

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	name := c.fileName()
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrDatabaseFileInvalid
	}
	return nil
}

// Path returns the full path of the store file.
func (c Config) Path() string {
	dir := c.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, c.fileName())
}

func (c Config) fileName() string {
	if c.DatabaseFile == "" {
		return DefaultDatabaseFile
	}
	return c.DatabaseFile
}
