package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLdflagsVersionWins(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.2.3"
	assert.Equal(t, "launchdeck/v1.2.3", UserAgent())
	assert.Contains(t, String(), "version: v1.2.3")
	assert.Regexp(t, `^\{\{\.Name\}\} version v1\.2\.3`, Template())
}
