package scan

// reset tears down whatever the previous attempt left behind: the worker is
// cancelled and joined before the queue is drained so no stale batch can
// slip in afterwards.
func (c *Controller) reset() {
	if c.worker != nil {
		c.worker.stop()
		c.worker = nil
	}
	c.stopTicker()

	if n := c.queue.Drain(); n > 0 {
		c.log.Debugln("dropped", n, "stale batches")
	}
	c.pending = nil

	c.err = nil
	c.root = nil
	c.succeeded = false
	c.totalSize.Store(0)
	c.elements.Store(0)

	if c.opts.Exclusions != nil {
		c.exclusions = c.opts.Exclusions.Exclusions()
	}
}

func (c *Controller) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}
