package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	Message string
	Kind    Kind
}

// Presenter is whatever renders notifications on screen. The notifier itself
// has no idea how they are drawn.
type Presenter interface {
	Render(n Notification)
	Clear()
}

const dismissAfter = 5 * time.Second

// Notifier shows at most one transient notification at a time. A new Show
// replaces whatever is visible and restarts the dismiss timer, so rapid
// validation errors never stack.
type Notifier struct {
	mu        sync.Mutex
	presenter Presenter
	delay     time.Duration
	timer     *time.Timer
	gen       uint64
}

func New(presenter Presenter) *Notifier {
	return &Notifier{
		presenter: presenter,
		delay:     dismissAfter,
	}
}

func (n *Notifier) Show(message string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	n.gen++
	gen := n.gen

	n.presenter.Render(Notification{Message: message, Kind: kind})

	n.timer = time.AfterFunc(n.delay, func() {
		n.dismiss(gen)
	})
}

// dismiss clears the notification unless a newer one replaced it while the
// timer callback was in flight.
func (n *Notifier) dismiss(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.gen {
		return
	}

	n.presenter.Clear()
}
