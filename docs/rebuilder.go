// Package docs exposes the synthesized specification over HTTP and owns the
// re-synthesis lifecycle: passes are serialized and overlapping rebuild
// signals coalesce into exactly one follow-up pass.
package docs

import (
	"sync"

	"github.com/oasforge/oasforge/generator"
	"github.com/oasforge/oasforge/logger"
)

// SynthesizeFunc runs one full extraction + synthesis pass and returns the
// new document.
type SynthesizeFunc func() (*generator.Document, error)

// Rebuilder holds the current document and serializes rebuild passes. A pass
// is atomic: it either fully replaces the document or leaves the previous one
// in place.
type Rebuilder struct {
	synth SynthesizeFunc
	log   logger.Logger

	passMu sync.Mutex

	stateMu sync.Mutex
	running bool
	pending bool

	docMu sync.RWMutex
	doc   *generator.Document
}

// NewRebuilder creates a rebuilder around a synthesis function.
func NewRebuilder(synth SynthesizeFunc, log logger.Logger) *Rebuilder {
	if log == nil {
		log = logger.Nop()
	}
	return &Rebuilder{synth: synth, log: log}
}

// Document returns the most recently synthesized document, or nil before the
// first successful pass.
func (r *Rebuilder) Document() *generator.Document {
	r.docMu.RLock()
	defer r.docMu.RUnlock()
	return r.doc
}

// Rebuild runs one synchronous pass. Passes never overlap: a concurrent
// caller blocks until the in-flight pass finishes.
func (r *Rebuilder) Rebuild() error {
	r.passMu.Lock()
	defer r.passMu.Unlock()

	doc, err := r.synth()
	if err != nil {
		r.log.Error().Err(err).Msg("Synthesis pass failed, keeping previous document")
		return err
	}

	r.docMu.Lock()
	r.doc = doc
	r.docMu.Unlock()

	r.log.Info().Int("paths", len(doc.Paths)).Msg("Specification synthesized")
	return nil
}

// Trigger requests an asynchronous rebuild. Signals arriving while a pass is
// in flight collapse into exactly one follow-up pass.
func (r *Rebuilder) Trigger() {
	r.stateMu.Lock()
	if r.running {
		r.pending = true
		r.stateMu.Unlock()
		return
	}
	r.running = true
	r.stateMu.Unlock()

	go r.drain()
}

func (r *Rebuilder) drain() {
	for {
		// Errors are already logged; a failed pass still drains pending
		// signals.
		_ = r.Rebuild()

		r.stateMu.Lock()
		if !r.pending {
			r.running = false
			r.stateMu.Unlock()
			return
		}
		r.pending = false
		r.stateMu.Unlock()
	}
}
