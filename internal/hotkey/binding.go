package hotkey

import (
	"sync"
)

// Registration is a live OS-level hotkey registration.
type Registration interface {
	// Keydown delivers one value per press. The channel closes when the
	// registration is released.
	Keydown() <-chan struct{}
	Unregister() error
}

// Registrar turns a combination into an OS registration.
type Registrar interface {
	Register(Combo) (Registration, error)
}

// Binding owns at most one live registration and fans its presses into a
// stable channel that survives rebinds, so consumers never have to
// re-subscribe when the combination changes.
type Binding struct {
	registrar Registrar
	triggered chan struct{}

	mu      sync.Mutex
	current Registration
	stop    chan struct{}
	combo   Combo
}

func NewBinding(r Registrar) *Binding {
	return &Binding{
		registrar: r,
		triggered: make(chan struct{}, 1),
	}
}

// Triggered reports presses of whatever combination is currently bound.
// A press that arrives while one is already pending is dropped.
func (b *Binding) Triggered() <-chan struct{} {
	return b.triggered
}

// Combo returns the currently bound combination, or the zero Combo when
// nothing is bound.
func (b *Binding) Combo() Combo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.combo
}

// Bind registers c and makes it the active combination, releasing any
// previous one. On failure the previous combination stays registered and
// keeps triggering.
func (b *Binding) Bind(c Combo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil && c == b.combo {
		return nil
	}

	reg, err := b.registrar.Register(c)
	if err != nil {
		return err
	}
	b.releaseLocked()

	stop := make(chan struct{})
	b.current = reg
	b.stop = stop
	b.combo = c
	go b.pump(reg, stop)
	return nil
}

// Rebind is Bind with a name that says what callers mean when a
// combination is already live.
func (b *Binding) Rebind(c Combo) error {
	return b.Bind(c)
}

// Unbind releases the active registration, if any.
func (b *Binding) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	b.combo = Combo{}
}

func (b *Binding) releaseLocked() {
	if b.current == nil {
		return
	}
	close(b.stop)
	b.current.Unregister()
	b.current = nil
	b.stop = nil
}

func (b *Binding) pump(reg Registration, stop chan struct{}) {
	for {
		select {
		case _, ok := <-reg.Keydown():
			if !ok {
				return
			}
			select {
			case b.triggered <- struct{}{}:
			default:
			}
		case <-stop:
			return
		}
	}
}
