package entity

// Identity principal autenticado. Es un tipo suma cerrado: solo las variantes de este
// paquete lo implementan, de modo que el contexto propio de cada rol (p. ej. la referencia
// de empleado necesaria para pedir) se obtiene con un type switch y no con campos opcionales.
type Identity interface {
	ID() string
	Role() Role
	isIdentity()
}

// OrderSubject lo implementan las identidades que pueden componer pedidos.
type OrderSubject interface {
	Identity
	OrderSubjectRef() string
}

// Admin administrador de la plataforma.
type Admin struct {
	UserID string
}

// Company cuenta corporativa suscrita a un plan.
type Company struct {
	UserID     string
	CompanyRef string
}

// Employee empleado de una empresa; EmployeeRef se usa para construir el payload del pedido.
type Employee struct {
	UserID      string
	EmployeeRef string
	CompanyRef  string
}

// Chef cocinero que gestiona su menú.
type Chef struct {
	UserID  string
	ChefRef string
}

// DeliveryPerson repartidor.
type DeliveryPerson struct {
	UserID     string
	CourierRef string
}

// Unrecognized identidad con un rol fuera de la enumeración. No entra a ninguna vista protegida.
type Unrecognized struct {
	UserID  string
	RawRole Role
}

func (a Admin) ID() string          { return a.UserID }
func (a Admin) Role() Role          { return RoleAdmin }
func (Admin) isIdentity()           {}
func (c Company) ID() string        { return c.UserID }
func (c Company) Role() Role        { return RoleCompany }
func (Company) isIdentity()         {}
func (e Employee) ID() string       { return e.UserID }
func (e Employee) Role() Role       { return RoleEmployee }
func (Employee) isIdentity()        {}
func (c Chef) ID() string           { return c.UserID }
func (c Chef) Role() Role           { return RoleChef }
func (Chef) isIdentity()            {}
func (d DeliveryPerson) ID() string { return d.UserID }
func (d DeliveryPerson) Role() Role { return RoleDeliveryPerson }
func (DeliveryPerson) isIdentity()  {}
func (u Unrecognized) ID() string   { return u.UserID }
func (u Unrecognized) Role() Role   { return u.RawRole }
func (Unrecognized) isIdentity()    {}

// OrderSubjectRef referencia del empleado que firma el pedido.
func (e Employee) OrderSubjectRef() string { return e.EmployeeRef }

// NewIdentity construye la variante que corresponde al rol.
// ref es la referencia propia del rol; companyRef solo aplica a Company y Employee.
func NewIdentity(userID string, role Role, ref, companyRef string) Identity {
	switch role {
	case RoleAdmin:
		return Admin{UserID: userID}
	case RoleCompany:
		if ref == "" {
			ref = companyRef
		}
		return Company{UserID: userID, CompanyRef: ref}
	case RoleEmployee:
		return Employee{UserID: userID, EmployeeRef: ref, CompanyRef: companyRef}
	case RoleChef:
		return Chef{UserID: userID, ChefRef: ref}
	case RoleDeliveryPerson:
		return DeliveryPerson{UserID: userID, CourierRef: ref}
	default:
		return Unrecognized{UserID: userID, RawRole: role}
	}
}
