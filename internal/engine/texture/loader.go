package texture

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/humming-top/internal/logger"
)

// Result is the outcome of one background load.
type Result struct {
	Source string
	Image  *image.RGBA
	Err    error

	seq uint64
}

// Loader runs texture loads off the main thread. Decoded pixels are handed
// back on a channel so GL uploads stay on the thread that owns the context.
type Loader struct {
	results chan Result
	wg      sync.WaitGroup
	started atomic.Uint64
}

// NewLoader creates a loader. Results are buffered so a finished load never
// blocks even if the consumer is between frames.
func NewLoader() *Loader {
	return &Loader{results: make(chan Result, 4)}
}

// Start begins loading source in a goroutine. Exactly one Result is sent
// for each call unless ctx is cancelled before it can be delivered.
func (l *Loader) Start(ctx context.Context, source string) {
	seq := l.started.Add(1)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := Load(ctx, source)
		if err != nil {
			logger.Warn("texture load failed", zap.String("source", source), zap.Error(err))
		} else {
			b := img.Bounds()
			logger.Info("texture loaded",
				zap.String("source", source),
				zap.Int("width", b.Dx()),
				zap.Int("height", b.Dy()))
		}
		select {
		case l.results <- Result{Source: source, Image: img, Err: err, seq: seq}:
		case <-ctx.Done():
		}
	}()
}

// Latest reports whether r comes from the most recent Start. Loads finish
// in any order, so a result started earlier must not replace a newer one.
func (l *Loader) Latest(r Result) bool {
	return r.seq == l.started.Load()
}

// Results returns the channel finished loads are delivered on.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Wait blocks until every started load has delivered or been cancelled.
func (l *Loader) Wait() {
	l.wg.Wait()
}
