package mutation

// Panel holds what a calculator or fraud view shows: the last successful
// result and, separately, a banner for the latest failure. A failure never
// replaces the last good result.
type Panel[T any] struct {
	Result  *T
	Banner  string
	Pending bool
}

// Apply folds a tracker state into the panel.
func (p *Panel[T]) Apply(s State[T]) {
	switch s.Status {
	case StatusPending:
		p.Pending = true
	case StatusSuccess:
		data := s.Data
		p.Result = &data
		p.Banner = ""
		p.Pending = false
	case StatusError:
		p.Banner = s.Message
		p.Pending = false
	}
}

// HasResult reports whether a successful result has ever been applied.
func (p *Panel[T]) HasResult() bool {
	return p.Result != nil
}
