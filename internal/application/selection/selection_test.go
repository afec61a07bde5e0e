package selection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/corporate-meals/internal/application/selection"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

type fakeNotifier struct {
	listeners []func(entity.Identity)
}

func (f *fakeNotifier) Subscribe(l func(entity.Identity)) func() {
	f.listeners = append(f.listeners, l)
	return func() {}
}

func (f *fakeNotifier) emit(id entity.Identity) {
	for _, l := range f.listeners {
		l(id)
	}
}

// toggle(x) es su propia inversa.
func TestToggle_EsInvolutivo(t *testing.T) {
	for _, initial := range [][]string{{}, {"1"}, {"1", "3"}, {"2", "3", "4"}} {
		s := selection.New()
		for _, id := range initial {
			s.Toggle(id)
		}
		for _, x := range []string{"1", "2", "3", "9"} {
			before := s.Contains(x)
			s.Toggle(x)
			s.Toggle(x)
			assert.Equal(t, before, s.Contains(x), "toggle(%s) dos veces debe restaurar la pertenencia", x)
			assert.ElementsMatch(t, initial, s.Members())
		}
	}
}

func TestToggle_DevuelveEstado(t *testing.T) {
	s := selection.New()
	assert.True(t, s.Toggle("1"))
	assert.False(t, s.Toggle("1"))
	assert.Equal(t, 0, s.Len())
}

func TestClearYMembers(t *testing.T) {
	s := selection.New()
	s.Toggle("3")
	s.Toggle("1")
	assert.Equal(t, []string{"1", "3"}, s.Members())
	assert.Equal(t, 2, s.Len())

	s.Clear()
	assert.Empty(t, s.Members())
}

func TestRescope_VaciaSoloSiCambia(t *testing.T) {
	s := selection.New()
	s.Rescope("u-1/catalog")
	s.Toggle("1")

	s.Rescope("u-1/catalog")
	assert.Equal(t, 1, s.Len())

	s.Rescope("u-2/catalog")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "u-2/catalog", s.Scope())
}

// Cambiar de identidad vacía la selección.
func TestBindIdentity_CambioDeIdentidadVacia(t *testing.T) {
	n := &fakeNotifier{}
	s := selection.New()
	s.BindIdentity(n)

	n.emit(entity.Employee{UserID: "u-1", EmployeeRef: "EMP-1"})
	s.Toggle("1")
	s.Toggle("3")

	n.emit(nil)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Scope())
}

func TestSubscribe_RecibeInstantaneas(t *testing.T) {
	s := selection.New()
	var seen [][]string
	unsubscribe := s.Subscribe(func(m []string) { seen = append(seen, m) })

	s.Toggle("2")
	s.Toggle("1")
	s.Clear()
	s.Clear() // sin cambios, sin notificación
	unsubscribe()
	s.Toggle("5")

	assert.Equal(t, [][]string{{"2"}, {"1", "2"}, {}}, seen)
}

// Un listener puede modificar el conjunto: su cambio se entrega después, sin bloquear.
func TestSubscribe_ListenerModificaElConjunto(t *testing.T) {
	s := selection.New()
	var seen [][]string
	s.Subscribe(func(m []string) {
		seen = append(seen, m)
		if len(m) > 1 {
			s.Remove("9")
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Toggle("1")
		s.Toggle("9")
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Toggle bloqueado por el listener")
	}

	assert.Equal(t, [][]string{{"1"}, {"1", "9"}, {"1"}}, seen)
	assert.Equal(t, []string{"1"}, s.Members())
}
