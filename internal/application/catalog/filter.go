// Package catalog filtra y presenta el catálogo de platos a partir del valor cacheado.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// Availability filtro de disponibilidad de tres estados.
type Availability string

const (
	AvailabilityAll         Availability = "all"
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// CategoryAll valor del selector de categoría que no filtra.
const CategoryAll = "all"

// ParseAvailability acepta all, available(-only), unavailable(-only) o vacío (all).
func ParseAvailability(s string) (Availability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AvailabilityAll, nil
	case "available", "available-only":
		return AvailabilityAvailable, nil
	case "unavailable", "unavailable-only":
		return AvailabilityUnavailable, nil
	}
	return "", fmt.Errorf("%w: disponibilidad %q", domain.ErrInvalidInput, s)
}

// Filter tres predicados independientes combinados con AND.
type Filter struct {
	Text         string
	Category     string
	Availability Availability
}

// Match informa si m cumple los tres predicados.
func (f Filter) Match(m entity.Meal) bool {
	return f.matchText(m) && f.matchCategory(m) && f.matchAvailability(m)
}

func (f Filter) matchText(m entity.Meal) bool {
	needle := strings.TrimSpace(f.Text)
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	needle = fold.String(needle)
	for _, field := range []string{m.Name, m.Description, m.ChefName} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

func (f Filter) matchCategory(m entity.Meal) bool {
	c := strings.TrimSpace(f.Category)
	if c == "" || strings.EqualFold(c, CategoryAll) {
		return true
	}
	return strings.EqualFold(c, m.Category)
}

func (f Filter) matchAvailability(m entity.Meal) bool {
	switch f.Availability {
	case AvailabilityAvailable:
		return m.Available
	case AvailabilityUnavailable:
		return !m.Available
	default:
		return true
	}
}

// Apply devuelve los platos que cumplen f, conservando el orden de entrada. Es pura: no
// modifica meals ni accede a la red.
func Apply(meals []entity.Meal, f Filter) []entity.Meal {
	out := make([]entity.Meal, 0, len(meals))
	for _, m := range meals {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Categories categorías distintas presentes en meals, ordenadas.
func Categories(meals []entity.Meal) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, m := range meals {
		if m.Category == "" {
			continue
		}
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		out = append(out, m.Category)
	}
	sort.Strings(out)
	return out
}
