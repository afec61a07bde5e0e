package usecase

import (
	"fmt"

	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// IdentitySource identidad vigente (Identity Store).
type IdentitySource interface {
	Current() entity.Identity
}

func chefRef(src IdentitySource) (string, error) {
	if c, ok := src.Current().(entity.Chef); ok && c.ChefRef != "" {
		return c.ChefRef, nil
	}
	return "", fmt.Errorf("%w: se requiere una identidad de chef", domain.ErrForbidden)
}

func companyRef(src IdentitySource) (string, error) {
	if c, ok := src.Current().(entity.Company); ok && c.CompanyRef != "" {
		return c.CompanyRef, nil
	}
	return "", fmt.Errorf("%w: se requiere una identidad de empresa", domain.ErrForbidden)
}

func employeeRef(src IdentitySource) (string, error) {
	if e, ok := src.Current().(entity.Employee); ok && e.EmployeeRef != "" {
		return e.EmployeeRef, nil
	}
	return "", fmt.Errorf("%w: se requiere una identidad de empleado", domain.ErrForbidden)
}

func courierRef(src IdentitySource) (string, error) {
	if d, ok := src.Current().(entity.DeliveryPerson); ok && d.CourierRef != "" {
		return d.CourierRef, nil
	}
	return "", fmt.Errorf("%w: se requiere una identidad de repartidor", domain.ErrForbidden)
}
