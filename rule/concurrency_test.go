package rule

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"pii-sanitizer/meta"
)

// TestMain verifies no goroutine started by the rule package (or by a test
// in it) is left running once the package's tests finish — a Processor is
// built once and meant to be shared read-only across many request
// goroutines, so a leak here would mean Apply/ApplyToString isn't actually
// safe for concurrent use.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProcessorConcurrentApplyIsSafe(t *testing.T) {
	p, err := NewProcessor(&RuleConfig{DefaultHashKey: "k"})
	assert.NoError(t, err)

	r, ok := p.Rule("@email:mask")
	assert.True(t, ok)

	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			out, _, err := r.ApplyToString("contact jane@example.com now", meta.Meta{})
			assert.NoError(t, err)
			assert.NotEmpty(t, out)
		}()
	}
	wg.Wait()
}
