package kernel

// Context is a task's handle on the kernel. Messages sent through a Context
// carry From 0; replies go to a capability transferred with the request.
type Context struct {
	k      *Kernel
	taskID TaskID
}

func (c *Context) TaskID() TaskID { return c.taskID }

// RecvChan returns the mailbox behind a receive capability.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return nil, false
	}
	ch := c.k.mailbox(epCap.ep)
	return ch, ch != nil
}

// Recv blocks for the next message. It fails once the mailbox is closed.
func (c *Context) Recv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	msg, ok := <-ch
	return msg, ok
}

// TryRecv returns a queued message without blocking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	select {
	case msg, ok := <-ch:
		return msg, ok
	default:
		return Message{}, false
	}
}

// SendToCapResult queues a message for toCap, transferring xfer with it.
// It never blocks.
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	switch {
	case !toCap.valid():
		return SendErrInvalidToCap
	case !toCap.canSend():
		return SendErrToNoSendRight
	}
	return c.k.send(0, toCap.ep, kind, payload, xfer)
}

// SendToCapRetry is SendToCapResult that waits one tick and retries while
// the destination is full, up to limit retries.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, xfer Capability, limit int) SendResult {
	res := c.SendToCapResult(toCap, kind, payload, xfer)
	for i := 0; i < limit && res == SendErrQueueFull; i++ {
		c.BlockOnTick()
		res = c.SendToCapResult(toCap, kind, payload, xfer)
	}
	return res
}

func (c *Context) NewEndpoint(rights Rights) Capability {
	if c.k == nil {
		return Capability{}
	}
	return c.k.NewEndpoint(rights)
}

// NowTick returns the current tick; ticks are milliseconds.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.nowTick()
}

// WaitTick blocks until the tick passes after and returns it.
func (c *Context) WaitTick(after uint64) uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.waitTick(after)
}

// BlockOnTick blocks until the next tick.
func (c *Context) BlockOnTick() { c.WaitTick(c.NowTick()) }
