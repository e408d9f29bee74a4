package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("SPENDLENS_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "absolute untouched", in: "/tmp/spendlens.db", want: "/tmp/spendlens.db"},
		{name: "tilde prefix", in: "~/spendlens.db", want: filepath.Join(home, "spendlens.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$SPENDLENS_TEST_DIR/spendlens.db", want: "/var/data/spendlens.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
