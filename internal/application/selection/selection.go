// Package selection guarda los platos elegidos para el pedido en composición.
//
// El conjunto vive solo durante la sesión y pertenece a un ámbito (identidad + vista de
// catálogo): cambiar de ámbito lo vacía.
package selection

import (
	"sort"
	"sync"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// Listener recibe los miembros tras cada cambio. Puede llamar a Toggle, Remove o Clear: ese
// cambio se entrega cuando termina la entrega en curso.
type Listener func(members []string)

// Set conjunto de identificadores de plato. Seguro para uso concurrente.
type Set struct {
	mu      sync.Mutex
	scope   string
	members map[string]struct{}

	// Instantáneas pendientes de entregar, en orden; un solo llamador entrega a la vez.
	queue      [][]string
	delivering bool

	subMu    sync.Mutex
	subs     map[int]Listener
	nextSub  int
}

// New crea un conjunto vacío.
func New() *Set {
	return &Set{members: map[string]struct{}{}, subs: map[int]Listener{}}
}

// Toggle añade id si no está y lo quita si está. Devuelve si quedó seleccionado.
func (s *Set) Toggle(id string) bool {
	s.mu.Lock()
	_, present := s.members[id]
	if present {
		delete(s.members, id)
	} else {
		s.members[id] = struct{}{}
	}
	return s.commit(!present)
}

// Remove quita id si está.
func (s *Set) Remove(id string) {
	s.mu.Lock()
	if _, ok := s.members[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.members, id)
	s.commit(false)
}

// Clear vacía el conjunto.
func (s *Set) Clear() {
	s.mu.Lock()
	if len(s.members) == 0 {
		s.mu.Unlock()
		return
	}
	s.members = map[string]struct{}{}
	s.commit(false)
}

// Members copia ordenada de los miembros. El orden no tiene significado para el servidor.
func (s *Set) Members() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Contains informa si id está seleccionado.
func (s *Set) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[id]
	return ok
}

// Len número de miembros.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

// Scope ámbito vigente.
func (s *Set) Scope() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Rescope cambia de ámbito; si es distinto al vigente el conjunto se vacía.
func (s *Set) Rescope(scope string) {
	s.mu.Lock()
	if scope == s.scope {
		s.mu.Unlock()
		return
	}
	s.scope = scope
	if len(s.members) == 0 {
		s.mu.Unlock()
		return
	}
	s.members = map[string]struct{}{}
	s.commit(false)
}

// IdentityNotifier lo implementa el Identity Store.
type IdentityNotifier interface {
	Subscribe(func(entity.Identity)) (unsubscribe func())
}

// BindIdentity reescopa el conjunto en cada cambio de identidad (sign-in, sign-out, expiración).
func (s *Set) BindIdentity(n IdentityNotifier) (unbind func()) {
	return n.Subscribe(func(id entity.Identity) {
		s.Rescope(ScopeFor(id))
	})
}

// ScopeFor ámbito de la vista de catálogo para una identidad.
func ScopeFor(id entity.Identity) string {
	if id == nil {
		return ""
	}
	return id.ID() + "/catalog"
}

// Subscribe registra un listener de cambios.
func (s *Set) Subscribe(l Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = l
	s.subMu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// commit encola la instantánea, la entrega si nadie más está entregando y libera s.mu.
func (s *Set) commit(result bool) bool {
	s.queue = append(s.queue, s.sortedLocked())
	if s.delivering {
		s.mu.Unlock()
		return result
	}
	s.delivering = true
	for len(s.queue) > 0 {
		snapshot := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		s.deliver(snapshot)
		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
	return result
}

func (s *Set) deliver(snapshot []string) {
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, l := range s.subs {
		listeners = append(listeners, l)
	}
	s.subMu.Unlock()
	for _, l := range listeners {
		l(snapshot)
	}
}

func (s *Set) sortedLocked() []string {
	out := make([]string, 0, len(s.members))
	for id := range s.members {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
