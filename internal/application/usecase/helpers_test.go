package usecase_test

import (
	"context"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type identityStub struct{ id entity.Identity }

func (s identityStub) Current() entity.Identity { return s.id }

type usdDisplay struct{}

func (usdDisplay) Display(context.Context) money.Currency { return money.Identity("USD") }

func newInfra() (*cache.Cache, *mutation.Workflow) {
	c := cache.New(cache.Config{})
	return c, mutation.NewWorkflow(c, mutation.NewBoard())
}

var (
	chefC     = entity.Chef{UserID: "u-chef", ChefRef: "C1"}
	companyCO = entity.Company{UserID: "u-co", CompanyRef: "CO-1"}
	employeeE = entity.Employee{UserID: "u-emp", EmployeeRef: "E", CompanyRef: "CO-1"}
	courierD  = entity.DeliveryPerson{UserID: "u-del", CourierRef: "D1"}
	adminA    = entity.Admin{UserID: "u-admin"}
)
