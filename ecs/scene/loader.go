package scene

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"sync"

	"github.com/plus3/stagecraft/ecs"
	"go.uber.org/zap"
)

// Loader reads and decodes scene documents on background goroutines. It is
// registered as a resource and drained once per frame by the asset poll
// system, so decoded scenes enter the world through ordinary commands.
type Loader struct {
	ecs.IsResource

	log     *zap.Logger
	wg      sync.WaitGroup
	mu      sync.Mutex
	ready   []ecs.AssetCommand
	errs    []error
	pending int
	loaded  int
}

// NewLoader returns an idle loader. A nil logger discards output.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log.Named("scene")}
}

// Load reads the document at path asynchronously.
func (l *Loader) Load(path string) {
	l.begin()
	go func() {
		defer l.wg.Done()
		data, err := os.ReadFile(path)
		if err != nil {
			l.fail(path, fmt.Errorf("read scene %s: %w", path, err))
			return
		}
		l.decode(path, data)
	}()
}

// LoadBytes decodes an in-memory document asynchronously. source labels the
// resulting SceneRoot.
func (l *Loader) LoadBytes(source string, data []byte) {
	l.begin()
	go func() {
		defer l.wg.Done()
		l.decode(source, data)
	}()
}

func (l *Loader) begin() {
	l.wg.Add(1)
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
}

func (l *Loader) decode(source string, data []byte) {
	doc, err := Parse(data)
	if err != nil {
		l.fail(source, fmt.Errorf("parse scene %s: %w", source, err))
		return
	}

	log := l.log
	cmd := ecs.AssetCommandFunc(func(c *ecs.Commands) {
		root := doc.Enqueue(c, source)
		log.Info("scene queued",
			zap.String("source", source),
			zap.Stringer("root", root),
			zap.Int("nodes", doc.Count()),
		)
	})

	l.mu.Lock()
	l.pending--
	l.loaded++
	l.ready = append(l.ready, cmd)
	l.mu.Unlock()
}

func (l *Loader) fail(source string, err error) {
	l.log.Error("scene load failed", zap.String("source", source), zap.Error(err))

	l.mu.Lock()
	l.pending--
	l.errs = append(l.errs, err)
	l.mu.Unlock()
}

// FlushCommands implements ecs.AssetSource. It hands over every document
// decoded since the previous call.
func (l *Loader) FlushCommands() iter.Seq[ecs.AssetCommand] {
	l.mu.Lock()
	ready := l.ready
	l.ready = nil
	l.mu.Unlock()

	return func(yield func(ecs.AssetCommand) bool) {
		for _, cmd := range ready {
			if !yield(cmd) {
				return
			}
		}
	}
}

// Wait blocks until every started load has finished decoding or failed.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Pending returns the number of loads still reading or decoding.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Loaded returns the number of documents decoded so far.
func (l *Loader) Loaded() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Err joins every load failure so far.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Join(l.errs...)
}
