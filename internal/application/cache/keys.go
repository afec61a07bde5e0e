package cache

import (
	"fmt"
	"strings"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// Key identificador opaco de una colección o recurso remoto cacheado.
type Key string

// Family prefijo de la clave (antes de ':'); se usa como etiqueta de métricas.
func (k Key) Family() string {
	family, _, _ := strings.Cut(string(k), ":")
	return family
}

// HasPrefix útil para invalidaciones por familia o por identidad.
func (k Key) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(k), prefix)
}

// Claves fijas.
const (
	KeyCatalog  Key = "catalog"
	KeyPlans    Key = "plans"
	KeyFeedback Key = "feedback"
)

// Prefijos de familias parametrizadas.
const (
	PrefixChefMeals    = "chef-meals:"
	PrefixOrderHistory = "orders:"
	PrefixOrder        = "order:"
	PrefixTracking     = "tracking:"
	PrefixDeliveries   = "deliveries:"
	PrefixSubscription = "subscription:"
	PrefixRates        = "rates:"
	PrefixNearby       = "nearby:"
)

func KeyChefMeals(chefRef string) Key        { return Key(PrefixChefMeals + chefRef) }
func KeyOrderHistory(employeeRef string) Key { return Key(PrefixOrderHistory + employeeRef) }
func KeyOrder(orderID string) Key            { return Key(PrefixOrder + orderID) }
func KeyOrderTracking(orderID string) Key    { return Key(PrefixTracking + orderID) }
func KeyDeliveries(courierRef string) Key    { return Key(PrefixDeliveries + courierRef) }
func KeySubscription(companyRef string) Key  { return Key(PrefixSubscription + companyRef) }
func KeyCurrencyRates(base string) Key       { return Key(PrefixRates + base) }

// KeyNearby redondea a ~100 m para que búsquedas casi idénticas compartan entrada.
func KeyNearby(at entity.Coordinates, radiusKm float64) Key {
	return Key(fmt.Sprintf("%s%.3f,%.3f:%g", PrefixNearby, at.Lat, at.Lng, radiusKm))
}
