package cgra

// Channel is a single-entry ready/valid link. The producer holds a value by
// sending it, which asserts valid. The consumer completes the transfer by
// accepting it. A held value stays unchanged until it is accepted.
type Channel[T any] struct {
	name  string
	msg   T
	valid bool
}

// NewChannel creates an empty channel.
func NewChannel[T any](name string) *Channel[T] {
	return &Channel[T]{name: name}
}

// Name returns the name of the channel.
func (c *Channel[T]) Name() string {
	return c.name
}

// CanSend tells if the producer side is ready to take a new value.
func (c *Channel[T]) CanSend() bool {
	return !c.valid
}

// Send asserts valid with the given value. It returns false and leaves the
// held value untouched if the channel is still occupied.
func (c *Channel[T]) Send(msg T) bool {
	if c.valid {
		return false
	}

	c.msg = msg
	c.valid = true

	return true
}

// Peek returns the held value and whether valid is asserted.
func (c *Channel[T]) Peek() (T, bool) {
	return c.msg, c.valid
}

// Valid tells if the channel holds a value.
func (c *Channel[T]) Valid() bool {
	return c.valid
}

// Accept completes the transfer of the held value. Accepting an empty
// channel is a no-op that reports false.
func (c *Channel[T]) Accept() (T, bool) {
	var zero T

	if !c.valid {
		return zero, false
	}

	msg := c.msg
	c.msg = zero
	c.valid = false

	return msg, true
}

// Reset drops any held value.
func (c *Channel[T]) Reset() {
	var zero T
	c.msg = zero
	c.valid = false
}
