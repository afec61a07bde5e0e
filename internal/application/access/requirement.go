package access

import (
	"sort"
	"strings"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// Requirement conjunto inmutable de roles que pueden entrar a una vista.
// El valor cero es una vista pública.
type Requirement struct {
	roles map[entity.Role]struct{}
}

// Require construye el requisito a partir de los roles permitidos.
func Require(roles ...entity.Role) Requirement {
	if len(roles) == 0 {
		return Requirement{}
	}
	set := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Requirement{roles: set}
}

// Public vista sin requisito de identidad.
func Public() Requirement { return Requirement{} }

// IsPublic informa si el requisito está vacío.
func (r Requirement) IsPublic() bool { return len(r.roles) == 0 }

// Allows informa si role pertenece al conjunto.
func (r Requirement) Allows(role entity.Role) bool {
	_, ok := r.roles[role]
	return ok
}

// Roles devuelve una copia ordenada de los roles permitidos.
func (r Requirement) Roles() []entity.Role {
	out := make([]entity.Role, 0, len(r.roles))
	for role := range r.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r Requirement) String() string {
	if r.IsPublic() {
		return "public"
	}
	roles := r.Roles()
	parts := make([]string, len(roles))
	for i, role := range roles {
		parts[i] = string(role)
	}
	return strings.Join(parts, "|")
}
