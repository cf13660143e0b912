package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		version, commit, want string
	}{
		{"development", "unknown", "development"},
		{"0.3.0", "9f2c1ab", "0.3.0+9f2c1ab"},
		{"0.3.0", "", "0.3.0"},
	}
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		assert.Equal(t, tt.want, String())
	}
}
