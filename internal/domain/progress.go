package domain

// ProgressFunc receives a completion percentage in [0, 100]. It is called
// synchronously and must return quickly.
type ProgressFunc func(percent int)

// Progress turns step counts into percentages and only forwards values that
// are strictly greater than the last one sent.
type Progress struct {
	fn    ProgressFunc
	total int
	last  int
}

// NewProgress creates a tracker for total steps. A nil fn disables reporting.
func NewProgress(fn ProgressFunc, total int) *Progress {
	return &Progress{fn: fn, total: total, last: -1}
}

// Step reports that done steps out of total have completed.
func (p *Progress) Step(done int) {
	if p == nil || p.fn == nil {
		return
	}
	pct := 100
	if p.total > 0 {
		pct = done * 100 / p.total
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if pct > p.last {
		p.last = pct
		p.fn(pct)
	}
}

// Done forces the final 100% notification.
func (p *Progress) Done() {
	if p == nil {
		return
	}
	p.Step(p.total)
}
