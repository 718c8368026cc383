package simulator

// ProgressObserver is notified while a run replays its stream.
type ProgressObserver interface {
	Progress(done, total int)
}

// ProgressFunc adapts a plain function to ProgressObserver.
type ProgressFunc func(done, total int)

func (f ProgressFunc) Progress(done, total int) {
	f(done, total)
}

// Ticker calls an observer every Every references. A nil Ticker or one
// without an observer is a no-op.
type Ticker struct {
	Observer ProgressObserver
	Every    int
	Total    int
}

// NewTicker creates a ticker for a stream of total references. An every of
// zero or less reports ten times per run.
func NewTicker(observer ProgressObserver, every, total int) *Ticker {
	if every <= 0 {
		every = max(1, total/10)
	}
	return &Ticker{Observer: observer, Every: every, Total: total}
}

// Tick reports progress when index falls on the cadence.
func (t *Ticker) Tick(index int) {
	if t == nil || t.Observer == nil {
		return
	}
	if index%t.Every == 0 {
		t.Observer.Progress(index, t.Total)
	}
}
