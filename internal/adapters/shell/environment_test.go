package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pyembed/internal/adapters/shell"
)

func TestResolveEnvironment(t *testing.T) {
	got := shell.ResolveEnvironment(
		[]string{"PATH=/usr/bin", "HOME=/home/user", "MALFORMED"},
		map[string]string{"HOME": "/override", "EXTRA": "1"},
	)

	assert.Equal(t, []string{"EXTRA=1", "HOME=/override", "PATH=/usr/bin"}, got)
}

func TestResolveEnvironment_Deterministic(t *testing.T) {
	overrides := map[string]string{"A": "1", "B": "2", "C": "3", "D": "4"}

	first := shell.ResolveEnvironment(nil, overrides)
	for range 10 {
		assert.Equal(t, first, shell.ResolveEnvironment(nil, overrides))
	}
}
