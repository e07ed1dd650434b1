package reactor

// shared counts the handles pointing at one piece of storage. Storage and
// its graph node are torn down when the count reaches zero.
type shared struct {
	refs int
}

func (s *shared) retain() {
	s.refs++
}

// release reports whether the caller dropped the last reference.
func (s *shared) release() bool {
	if s.refs == 0 {
		return false
	}
	s.refs--
	return s.refs == 0
}

func (s *shared) alive() bool {
	return s.refs > 0
}

// handle is the per-copy half of reference counting: each Clone gets its own
// handle so releasing one copy twice cannot steal another copy's reference.
type handle struct {
	released bool
}

func (h *handle) markReleased() bool {
	if h.released {
		return false
	}
	h.released = true
	return true
}
