package scan

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pranshuparmar/memtree/internal/config"
	"github.com/pranshuparmar/memtree/internal/logging"
	"github.com/pranshuparmar/memtree/internal/proc"
	"github.com/pranshuparmar/memtree/pkg/model"
)

var errNoResult = errors.New("scan ended without a result")

type Options struct {
	Source     proc.Source
	Exclusions config.ExclusionSource

	// TickInterval is the drain period, 100ms when zero.
	TickInterval time.Duration
	// MaxNodesPerTick caps the nodes delivered by one Drain. Zero means no cap.
	MaxNodesPerTick int

	// OnNode is called for every node as it is attached to the tree.
	OnNode func(*model.Node)
	// OnComplete is called exactly once per scan attempt.
	OnComplete func()
}

// Controller drives scans and publishes their nodes. It is not safe for
// concurrent use: every method must be called from the goroutine that owns
// it, typically an event loop selecting on Ticks. Progress is the exception
// and may be read from anywhere.
type Controller struct {
	opts  Options
	queue *Queue
	log   *logging.Logger

	worker     *worker
	ticker     *time.Ticker
	pending    Batch
	exclusions []string

	scanID    string
	root      *model.Node
	err       error
	done      chan struct{}
	finished  bool
	succeeded bool

	totalSize atomic.Uint64
	elements  atomic.Int64
}

func NewController(opts Options) *Controller {
	if opts.Source == nil {
		opts.Source = proc.NewSource()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = config.DefaultTickInterval
	}
	return &Controller{
		opts:  opts,
		queue: NewQueue(),
		log:   logging.New("controller"),
	}
}

// Start begins a scan. When the previous scan succeeded and force is false
// the cached result is kept and completion is raised again right away. A
// scan already in flight is left alone unless force is set, in which case it
// is cancelled first.
func (c *Controller) Start(force bool) {
	if c.succeeded && !force {
		c.log.Debugln("reusing result of scan", c.scanID)
		c.beginAttempt()
		c.complete()
		return
	}
	if c.Scanning() {
		if !force {
			return
		}
		c.Cancel()
	}

	c.reset()
	c.beginAttempt()
	c.scanID = uuid.NewString()
	c.log.Infoln("starting scan", c.scanID, "force:", force)

	c.worker = startWorker(context.Background(), c.scanID, c.opts.Source, c.exclusions, c.queue)
	c.ticker = time.NewTicker(c.opts.TickInterval)
}

// Cancel tears down the scan in flight and finishes it with ErrCancelled.
// A successful result is kept. Completion is raised in every case.
func (c *Controller) Cancel() {
	if c.succeeded {
		c.beginAttempt()
		c.complete()
		return
	}
	if !c.Scanning() {
		c.beginAttempt()
	}
	c.log.Infoln("cancelling scan", c.scanID)
	c.reset()
	c.finish(ErrCancelled)
}

// Ticks returns the drain tick channel, or nil when no scan is in flight.
func (c *Controller) Ticks() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C
}

// Drain delivers whatever the worker has published so far. It never blocks.
// Delivering the root finishes the scan.
func (c *Controller) Drain() {
	if !c.Scanning() {
		return
	}

	delivered := 0
	for {
		if len(c.pending) == 0 {
			b, ok := c.queue.TryPop()
			if !ok {
				break
			}
			c.pending = b
		}
		for len(c.pending) > 0 {
			if c.opts.MaxNodesPerTick > 0 && delivered >= c.opts.MaxNodesPerTick {
				return
			}
			n := c.pending[0]
			c.pending[0] = nil
			c.pending = c.pending[1:]

			c.deliver(n)
			delivered++
			if n.IsRoot() {
				c.pending = nil
				c.finish(n.Err)
				return
			}
		}
	}

	// the worker pushes before it exits, so an exited worker with nothing
	// queued will never deliver a root
	if c.worker != nil && c.worker.exited() && c.queue.Len() == 0 {
		err := c.worker.err
		if err == nil {
			err = errNoResult
		}
		c.finish(err)
	}
}

func (c *Controller) deliver(n *model.Node) {
	if n.IsRoot() {
		c.root = n
	} else if n.Parent != nil {
		n.Parent.Children = append(n.Parent.Children, n)
	}
	c.totalSize.Add(n.OwnSize)
	c.elements.Add(1)

	if c.opts.OnNode != nil {
		c.opts.OnNode(n)
	}
}

func (c *Controller) beginAttempt() {
	c.done = make(chan struct{})
	c.finished = false
}

// finish records the outcome of the current attempt, stops the tick and
// raises completion.
func (c *Controller) finish(err error) {
	c.err = err
	c.succeeded = err == nil
	c.stopTicker()

	if err != nil {
		c.log.Infoln("scan", c.scanID, "finished:", err)
	} else {
		p := c.Progress()
		c.log.Infoln("scan", c.scanID, "finished with", p.Elements, "nodes,", p.TotalSize, "bytes")
	}
	c.complete()
}

func (c *Controller) complete() {
	if c.finished {
		return
	}
	c.finished = true
	close(c.done)
	if c.opts.OnComplete != nil {
		c.opts.OnComplete()
	}
}

// Wait runs a minimal event loop until the current attempt completes. If
// ctx ends first the scan is cancelled.
func (c *Controller) Wait(ctx context.Context) error {
	for c.Scanning() {
		select {
		case <-ctx.Done():
			c.Cancel()
		case <-c.Ticks():
			c.Drain()
		}
	}
	return c.err
}

// Scanning reports whether an attempt is in flight.
func (c *Controller) Scanning() bool {
	return c.done != nil && !c.finished
}

// Done is closed when the current attempt completes.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Root is the synthetic root of the last delivered tree.
func (c *Controller) Root() *model.Node {
	return c.root
}

// Err is the scan-level error of the last completed attempt. Per-process
// failures show up on the nodes instead.
func (c *Controller) Err() error {
	return c.err
}

func (c *Controller) ScanID() string {
	return c.scanID
}

func (c *Controller) Progress() model.Progress {
	return model.Progress{
		TotalSize: c.totalSize.Load(),
		Elements:  int(c.elements.Load()),
	}
}
