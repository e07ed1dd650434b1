package reactor

import "errors"

var (
	// ErrShutdown is the panic value of WithRegistry once the runtime has
	// been shut down. Use TryWithRegistry during teardown.
	ErrShutdown = errors.New("reactor: runtime shut down")

	// ErrFlushLimit is returned by Settle when effects keep scheduling each
	// other past the allowed number of rounds.
	ErrFlushLimit = errors.New("reactor: flush limit reached")
)
