package integrationtests

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/stimforge/internal/app"
	"github.com/specialistvlad/stimforge/internal/testutil"
)

// recorderDesign returns a routine of n recorder components c0..c(n-1).
func recorderDesign(n int) map[string]string {
	var sb strings.Builder
	sb.WriteString("routine \"trial\" {\n")
	for i := range n {
		fmt.Fprintf(&sb, "  component \"recorder\" \"c%d\" {}\n", i)
	}
	sb.WriteString("}\n")
	return map[string]string{"main.hcl": sb.String()}
}

func TestConcurrency_WorkerLimitAndSiblingOrder(t *testing.T) {
	// --- Arrange ---
	const n = 9
	rec := testutil.NewRecorderModule(40 * time.Millisecond)

	// --- Act ---
	start := time.Now()
	result := RunIntegrationTest(t, recorderDesign(n), app.Config{Target: "native", Workers: 3}, rec)
	elapsed := time.Since(start)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.LessOrEqual(t, rec.Peak(), 3, "more writers ran at once than workers allowed")
	assert.Greater(t, rec.Peak(), 1, "writers did not run concurrently")
	assert.Less(t, elapsed, time.Duration(n)*40*time.Millisecond, "writers ran one after another")

	var want []string
	for i := range n {
		want = append(want, fmt.Sprintf("c%d@init", i))
	}
	testutil.AssertInOrder(t, result.Output, want...)
	require.Len(t, rec.ExecutionTimes, n)
}

func TestConcurrency_SingleWorkerIsSequential(t *testing.T) {
	// --- Arrange ---
	rec := testutil.NewRecorderModule(5 * time.Millisecond)

	// --- Act ---
	result := RunIntegrationTest(t, recorderDesign(4), app.Config{Target: "web", Workers: 1}, rec)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, 1, rec.Peak())

	for i := 1; i < 4; i++ {
		prev := rec.ExecutionTimes[fmt.Sprintf("c%d", i-1)]
		cur := rec.ExecutionTimes[fmt.Sprintf("c%d", i)]
		assert.False(t, cur.Start.Before(prev.End), "c%d started before c%d finished", i, i-1)
	}
	testutil.AssertInOrder(t, result.Output,
		"// main: generated for the web runtime",
		"c0@init", "c1@init", "c2@init", "c3@init",
		"c0@routine start", "c3@experiment end",
	)
}
