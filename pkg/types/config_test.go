package types

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty file name falls back to default",
			config:  Config{DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "custom file name is valid",
			config:  Config{DataDir: "/tmp/data", DatabaseFile: "brokerage.db"},
			wantErr: nil,
		},
		{
			name:    "file name with a directory returns ErrDatabaseFileInvalid",
			config:  Config{DataDir: "/tmp/data", DatabaseFile: "nested/brokerage.db"},
			wantErr: ErrDatabaseFileInvalid,
		},
		{
			name:    "dot-dot returns ErrDatabaseFileInvalid",
			config:  Config{DatabaseFile: ".."},
			wantErr: ErrDatabaseFileInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	if got := (Config{DataDir: "/srv/ledger"}).Path(); got != filepath.Join("/srv/ledger", DefaultDatabaseFile) {
		t.Errorf("Path() = %q", got)
	}
	if got := (Config{DatabaseFile: "x.db"}).Path(); got != "x.db" {
		t.Errorf("Path() with empty DataDir = %q, want x.db", got)
	}
}
