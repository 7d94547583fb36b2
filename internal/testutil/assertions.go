package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertInOrder checks that every fragment occurs in output, each after the
// previous one.
func AssertInOrder(t *testing.T, output string, fragments ...string) {
	t.Helper()
	rest := output
	for _, f := range fragments {
		i := strings.Index(rest, f)
		require.True(t, i >= 0, "expected %q (in order) in output:\n%s", f, output)
		rest = rest[i+len(f):]
	}
}
