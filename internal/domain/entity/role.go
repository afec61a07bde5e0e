package entity

// Role rol de la identidad autenticada. Se conserva como string para poder representar
// roles que la API remota emita y el cliente aún no conozca.
type Role string

// Roles válidos.
const (
	RoleAdmin          Role = "admin"
	RoleCompany        Role = "company"
	RoleEmployee       Role = "employee"
	RoleChef           Role = "chef"
	RoleDeliveryPerson Role = "delivery_person"
)

// Roles devuelve la enumeración completa, en orden estable.
func Roles() []Role {
	return []Role{RoleAdmin, RoleCompany, RoleEmployee, RoleChef, RoleDeliveryPerson}
}

// Known informa si el rol pertenece a la enumeración.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleEmployee, RoleChef, RoleDeliveryPerson:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
