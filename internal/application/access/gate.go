// Package access decide a qué vistas puede entrar la identidad actual.
package access

import (
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// DecisionKind resultado de CanEnter.
type DecisionKind string

const (
	Allow    DecisionKind = "allow"
	Pending  DecisionKind = "pending"
	Redirect DecisionKind = "redirect"
)

// Decision veredicto del gate. Target solo aplica a Redirect.
type Decision struct {
	Kind   DecisionKind
	Target View
}

func (d Decision) Allowed() bool { return d.Kind == Allow }

// CanEnter aplica las comprobaciones en orden; cada una solo se evalúa si pasó la anterior:
//  1. resolución de identidad en curso → Pending (sin redirección)
//  2. sin identidad → Redirect(login)
//  3. rol fuera del requisito → Redirect(home)
//  4. Allow
//
// Un requisito vacío (vista pública) solo espera a la resolución en curso.
func CanEnter(req Requirement, identity entity.Identity, resolving bool) Decision {
	if resolving {
		return Decision{Kind: Pending}
	}
	if req.IsPublic() {
		return Decision{Kind: Allow}
	}
	if identity == nil {
		return Decision{Kind: Redirect, Target: ViewLogin}
	}
	if _, unknown := identity.(entity.Unrecognized); unknown || !req.Allows(identity.Role()) {
		return Decision{Kind: Redirect, Target: ViewHome}
	}
	return Decision{Kind: Allow}
}

// DefaultViewFor vista de aterrizaje de cada rol para la entrada compartida /dashboard.
// Un rol desconocido o vacío degrada a la página pública.
func DefaultViewFor(role entity.Role) View {
	switch role {
	case entity.RoleAdmin:
		return ViewAdminDashboard
	case entity.RoleCompany:
		return ViewCompanyDashboard
	case entity.RoleEmployee:
		return ViewEmployeeDashboard
	case entity.RoleChef:
		return ViewChefDashboard
	case entity.RoleDeliveryPerson:
		return ViewDeliveryDashboard
	default:
		return ViewHome
	}
}

// IdentitySource lo implementa el Identity Store.
type IdentitySource interface {
	Current() entity.Identity
	Resolving() bool
}

// Gate liga CanEnter a la identidad vigente.
type Gate struct {
	src IdentitySource
}

// NewGate crea el gate sobre una fuente de identidad.
func NewGate(src IdentitySource) *Gate {
	return &Gate{src: src}
}

// Check decide si la identidad actual puede entrar a una vista con el requisito dado.
func (g *Gate) Check(req Requirement) Decision {
	return CanEnter(req, g.src.Current(), g.src.Resolving())
}

// Landing vista de aterrizaje de la identidad actual (Pending mientras se resuelve).
func (g *Gate) Landing() Decision {
	if g.src.Resolving() {
		return Decision{Kind: Pending}
	}
	id := g.src.Current()
	if id == nil {
		return Decision{Kind: Redirect, Target: ViewHome}
	}
	return Decision{Kind: Redirect, Target: DefaultViewFor(id.Role())}
}
