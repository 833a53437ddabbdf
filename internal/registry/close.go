package registry

import "io"

// Close closes the underlying store when it holds resources (e.g. a DB
// connection).
func (r *Registry) Close() error {
	if c, ok := r.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
