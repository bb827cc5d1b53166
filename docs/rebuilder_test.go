package docs

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasforge/oasforge/generator"
	"github.com/oasforge/oasforge/logger"
)

func TestRebuilderDocumentNilBeforeFirstPass(t *testing.T) {
	r := NewRebuilder(func() (*generator.Document, error) {
		return &generator.Document{}, nil
	}, logger.Nop())

	assert.Nil(t, r.Document())
}

func TestRebuilderRebuildReplacesDocument(t *testing.T) {
	doc := &generator.Document{OpenAPI: "3.0.1"}
	r := NewRebuilder(func() (*generator.Document, error) {
		return doc, nil
	}, logger.Nop())

	require.NoError(t, r.Rebuild())
	assert.Same(t, doc, r.Document())
}

func TestRebuilderFailedPassKeepsPreviousDocument(t *testing.T) {
	doc := &generator.Document{OpenAPI: "3.0.1"}
	var fail atomic.Bool

	r := NewRebuilder(func() (*generator.Document, error) {
		if fail.Load() {
			return nil, errors.New("parse failure")
		}
		return doc, nil
	}, logger.Nop())

	require.NoError(t, r.Rebuild())

	fail.Store(true)
	require.Error(t, r.Rebuild())
	assert.Same(t, doc, r.Document(), "failed pass leaves the previous document in place")
}

func TestRebuilderPassesNeverOverlap(t *testing.T) {
	var active, maxActive int32

	r := NewRebuilder(func() (*generator.Document, error) {
		now := atomic.AddInt32(&active, 1)
		for {
			seen := atomic.LoadInt32(&maxActive)
			if now <= seen || atomic.CompareAndSwapInt32(&maxActive, seen, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return &generator.Document{}, nil
	}, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Rebuild()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive), "passes must be serialized")
}

func TestRebuilderTriggerCoalesces(t *testing.T) {
	var passes atomic.Int32
	release := make(chan struct{})

	r := NewRebuilder(func() (*generator.Document, error) {
		if passes.Add(1) == 1 {
			<-release
		}
		return &generator.Document{}, nil
	}, logger.Nop())

	r.Trigger()

	// Wait for the first pass to be in flight, then pile up signals.
	require.Eventually(t, func() bool {
		return passes.Load() == 1
	}, time.Second, time.Millisecond)

	for i := 0; i < 5; i++ {
		r.Trigger()
	}
	close(release)

	// All queued signals collapse into exactly one follow-up pass.
	require.Eventually(t, func() bool {
		return passes.Load() == 2
	}, time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(2), passes.Load())
	assert.NotNil(t, r.Document())
}
