package access

import (
	"sort"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// View ruta de una vista del cliente.
type View string

// Vistas públicas y de aterrizaje.
const (
	ViewHome          View = "/"
	ViewLogin         View = "/login"
	ViewPasswordReset View = "/password-reset"
	ViewDashboard     View = "/dashboard"
)

// Dashboards por rol.
const (
	ViewAdminDashboard    View = "/admin/dashboard"
	ViewCompanyDashboard  View = "/company/dashboard"
	ViewEmployeeDashboard View = "/employee/dashboard"
	ViewChefDashboard     View = "/chef/dashboard"
	ViewDeliveryDashboard View = "/delivery/dashboard"
)

// Vistas funcionales.
const (
	ViewAdminPlans       View = "/admin/plans"
	ViewAdminFeedback    View = "/admin/feedback"
	ViewCompanyPlans     View = "/company/plans"
	ViewSubscription     View = "/company/subscription"
	ViewCatalog          View = "/employee/catalog"
	ViewSelection        View = "/employee/selection"
	ViewOrders           View = "/employee/orders"
	ViewOrderReceipt     View = "/employee/orders/receipt"
	ViewNearby           View = "/employee/nearby"
	ViewEmployeeFeedback View = "/employee/feedback"
	ViewChefMeals        View = "/chef/meals"
	ViewDeliveries       View = "/delivery/orders"
	ViewOrderTracking    View = "/orders/tracking"
	ViewPreferences      View = "/preferences"
	ViewDisposition      View = "/disposition"
)

// Registry vistas registradas con su requisito, fijado al registrarlas.
type Registry struct {
	views map[View]Requirement
}

// NewRegistry devuelve el registro con todas las vistas del cliente.
func NewRegistry() *Registry {
	signedIn := Require(entity.Roles()...)
	return &Registry{views: map[View]Requirement{
		ViewHome:          Public(),
		ViewLogin:         Public(),
		ViewPasswordReset: Public(),

		ViewAdminDashboard:    Require(entity.RoleAdmin),
		ViewCompanyDashboard:  Require(entity.RoleCompany),
		ViewEmployeeDashboard: Require(entity.RoleEmployee),
		ViewChefDashboard:     Require(entity.RoleChef),
		ViewDeliveryDashboard: Require(entity.RoleDeliveryPerson),

		ViewAdminPlans:       Require(entity.RoleAdmin),
		ViewAdminFeedback:    Require(entity.RoleAdmin),
		ViewCompanyPlans:     Require(entity.RoleCompany),
		ViewSubscription:     Require(entity.RoleCompany),
		ViewCatalog:          Require(entity.RoleEmployee),
		ViewSelection:        Require(entity.RoleEmployee),
		ViewOrders:           Require(entity.RoleEmployee),
		ViewOrderReceipt:     Require(entity.RoleEmployee),
		ViewNearby:           Require(entity.RoleEmployee),
		ViewEmployeeFeedback: Require(entity.RoleEmployee),
		ViewChefMeals:        Require(entity.RoleChef),
		ViewDeliveries:       Require(entity.RoleDeliveryPerson),
		ViewOrderTracking:    Require(entity.RoleEmployee, entity.RoleDeliveryPerson, entity.RoleAdmin),
		ViewPreferences:      signedIn,
		ViewDisposition:      signedIn,
	}}
}

// Requirement devuelve el requisito de una vista registrada.
func (r *Registry) Requirement(v View) (Requirement, bool) {
	req, ok := r.views[v]
	return req, ok
}

// MustRequirement como Requirement pero entra en pánico si la vista no está registrada
// (error de programación al montar las rutas).
func (r *Registry) MustRequirement(v View) Requirement {
	req, ok := r.views[v]
	if !ok {
		panic("access: vista no registrada " + string(v))
	}
	return req
}

// Views devuelve las vistas registradas en orden estable.
func (r *Registry) Views() []View {
	out := make([]View, 0, len(r.views))
	for v := range r.views {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
