package dto

// DashboardResponse panel de un rol: vistas a las que puede entrar y la disposición pendiente.
type DashboardResponse struct {
	Role        string           `json:"role"`
	Views       []string         `json:"views"`
	Disposition *MutationOutcome `json:"disposition,omitempty"`
}
