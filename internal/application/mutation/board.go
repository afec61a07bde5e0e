package mutation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
)

// Board disposición vigente (modal/banner). Guarda solo el último resultado publicado;
// la vista lo muestra y lo descarta con Dismiss.
type Board struct {
	mu     sync.Mutex
	latest *dto.MutationOutcome
	now    func() time.Time

	subMu   sync.Mutex
	subs    map[int]func(dto.MutationOutcome)
	nextSub int
}

// NewBoard crea un tablero vacío.
func NewBoard() *Board {
	return &Board{now: time.Now, subs: map[int]func(dto.MutationOutcome){}}
}

// Publish asigna ID y fecha al resultado, lo deja como vigente y lo devuelve.
func (b *Board) Publish(o dto.MutationOutcome) dto.MutationOutcome {
	o.ID = uuid.NewString()
	o.At = b.now()
	b.mu.Lock()
	b.latest = &o
	b.mu.Unlock()

	b.subMu.Lock()
	listeners := make([]func(dto.MutationOutcome), 0, len(b.subs))
	for _, l := range b.subs {
		listeners = append(listeners, l)
	}
	b.subMu.Unlock()
	for _, l := range listeners {
		l(o)
	}
	return o
}

// Latest disposición pendiente de mostrar, si hay.
func (b *Board) Latest() (dto.MutationOutcome, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil {
		return dto.MutationOutcome{}, false
	}
	return *b.latest, true
}

// Dismiss descarta la disposición id. Devuelve false si ya no es la vigente.
func (b *Board) Dismiss(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil || b.latest.ID != id {
		return false
	}
	b.latest = nil
	return true
}

// Clear descarta cualquier disposición (cambio de identidad).
func (b *Board) Clear() {
	b.mu.Lock()
	b.latest = nil
	b.mu.Unlock()
}

// Subscribe registra un listener de publicaciones.
func (b *Board) Subscribe(l func(dto.MutationOutcome)) (unsubscribe func()) {
	b.subMu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = l
	b.subMu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			b.subMu.Lock()
			delete(b.subs, id)
			b.subMu.Unlock()
		})
	}
}
