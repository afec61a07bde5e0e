// Package order compone, envía y consulta pedidos del empleado.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/application/selection"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/money"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

// MutationSubmit nombre de la mutación de envío de pedido.
const MutationSubmit = "order.submit"

const submitFailureMessage = "No se pudo registrar el pedido. Inténtalo de nuevo."

// Config parámetros del caso de uso.
type Config struct {
	TrackingStaleAfter time.Duration
}

// UseCase pedidos del empleado.
type UseCase struct {
	orders   repository.OrderRepository
	cache    *cache.Cache
	sel      *selection.Set
	wf       *mutation.Workflow
	ids      IdentitySource
	currency DisplayCurrency
	receipts ReceiptGenerator
	cfg      Config
	now      func() time.Time
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	orders repository.OrderRepository,
	c *cache.Cache,
	sel *selection.Set,
	wf *mutation.Workflow,
	ids IdentitySource,
	currency DisplayCurrency,
	receipts ReceiptGenerator,
	cfg Config,
) *UseCase {
	return &UseCase{
		orders:   orders,
		cache:    c,
		sel:      sel,
		wf:       wf,
		ids:      ids,
		currency: currency,
		receipts: receipts,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Scope ámbito de serialización del envío para la selección vigente.
func (uc *UseCase) Scope() string {
	return "order:" + uc.sel.Scope()
}

// Submit envía la selección vigente como pedido.
//
// Retorna:
//   - (nil, outcome vacío, nil) si la selección está vacía: no hay llamada remota.
//   - *domain.OrderError{MissingIdentityContext} si la identidad no tiene referencia de empleado.
//   - domain.ErrMutationInFlight si ya hay un envío en curso para la selección.
//   - *domain.OrderError{RemoteRejected|Transport} si la API falla; la selección queda intacta.
//
// En éxito la selección se vacía al resolver (gana sobre cualquier toggle previo), se
// invalidan el historial y los seguimientos, y se publica la disposición de éxito.
func (uc *UseCase) Submit(ctx context.Context) (*entity.OrderConfirmation, dto.MutationOutcome, error) {
	members := uc.sel.Members()
	if len(members) == 0 {
		return nil, dto.MutationOutcome{}, nil
	}
	ref, ok := subjectRef(uc.ids.Current())
	if !ok {
		return nil, dto.MutationOutcome{}, &domain.OrderError{Kind: domain.ErrMissingIdentityContext}
	}

	req := entity.OrderRequest{
		SubjectRef:     ref,
		Items:          make([]entity.OrderItem, 0, len(members)),
		IdempotencyKey: uuid.NewString(),
	}
	for _, id := range members {
		req.Items = append(req.Items, entity.OrderItem{ItemID: id})
	}

	var confirmation *entity.OrderConfirmation
	outcome, err := uc.wf.Run(ctx, mutation.Mutation{
		Name:  MutationSubmit,
		Scope: uc.Scope(),
		Do: func(ctx context.Context) error {
			c, err := uc.orders.Create(ctx, req)
			confirmation = c
			return err
		},
		OnSuccess:          uc.sel.Clear,
		Invalidate:         []cache.Key{cache.KeyOrderHistory(ref)},
		InvalidatePrefixes: []string{cache.PrefixTracking},
		SuccessMessage:     "Pedido registrado.",
		FailureMessage:     submitFailureMessage,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMutationInFlight) {
			return nil, outcome, err
		}
		kind := domain.ErrTransport
		if errors.Is(err, domain.ErrRemoteRejected) {
			kind = domain.ErrRemoteRejected
		}
		return nil, outcome, &domain.OrderError{Kind: kind, Message: domain.RemoteMessage(err), Err: err}
	}
	return confirmation, outcome, nil
}

// SubmitResponse adapta Submit a la respuesta de la vista.
func (uc *UseCase) SubmitResponse(ctx context.Context) (*dto.OrderSubmitResponse, error) {
	conf, outcome, err := uc.Submit(ctx)
	resp := &dto.OrderSubmitResponse{Outcome: outcome}
	if conf != nil {
		resp.OrderID = conf.OrderID
		resp.Status = conf.Status
		total := money.Project(conf.Total, uc.currency.Display(ctx))
		resp.Total = &total
	}
	return resp, err
}

// History historial del empleado vigente.
func (uc *UseCase) History(ctx context.Context) (*dto.OrderHistoryResponse, error) {
	ref, ok := subjectRef(uc.ids.Current())
	if !ok {
		return nil, &domain.OrderError{Kind: domain.ErrMissingIdentityContext}
	}
	entry := cache.Get(ctx, uc.cache, cache.KeyOrderHistory(ref), func(ctx context.Context) ([]entity.Order, error) {
		return uc.orders.ListByEmployee(ctx, ref)
	})
	if !entry.HasValue && entry.Status == cache.StatusError {
		return nil, entry.Err
	}
	cur := uc.currency.Display(ctx)
	items := make([]dto.OrderResponse, 0, len(entry.Value))
	for _, o := range entry.Value {
		items = append(items, toOrderResponse(o, cur))
	}
	return &dto.OrderHistoryResponse{
		Items: items,
		Cache: dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err),
	}, nil
}

// Track seguimiento de un pedido, con ventana de frescura propia.
func (uc *UseCase) Track(ctx context.Context, orderID string) (*dto.TrackingResponse, error) {
	entry := cache.Get(ctx, uc.cache, cache.KeyOrderTracking(orderID), func(ctx context.Context) (*entity.OrderTracking, error) {
		return uc.orders.Track(ctx, orderID)
	}, cache.WithStaleAfter(uc.cfg.TrackingStaleAfter))
	if !entry.HasValue {
		if entry.Err != nil {
			return nil, entry.Err
		}
		return &dto.TrackingResponse{OrderID: orderID, Cache: dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, nil)}, nil
	}
	t := entry.Value
	resp := &dto.TrackingResponse{
		OrderID:    t.OrderID,
		Status:     t.Status,
		CourierRef: t.CourierRef,
		ETA:        t.ETA,
		UpdatedAt:  t.UpdatedAt,
		Cache:      dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err),
	}
	if t.Position != nil {
		lat, lng := t.Position.Lat, t.Position.Lng
		resp.Lat, resp.Lng = &lat, &lng
	}
	return resp, nil
}

// Receipt genera el PDF del comprobante de un pedido propio.
func (uc *UseCase) Receipt(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	ref, ok := subjectRef(uc.ids.Current())
	if !ok {
		return nil, "", &domain.OrderError{Kind: domain.ErrMissingIdentityContext}
	}
	entry := cache.Get(ctx, uc.cache, cache.KeyOrder(orderID), func(ctx context.Context) (*entity.Order, error) {
		return uc.orders.GetByID(ctx, orderID)
	})
	if !entry.HasValue {
		if entry.Err != nil {
			return nil, "", entry.Err
		}
		return nil, "", ctx.Err()
	}
	o := entry.Value
	// Sin empleado en la respuesta no hay forma de probar la propiedad: se rechaza.
	if o.EmployeeRef != ref {
		return nil, "", domain.ErrForbidden
	}

	cur := uc.currency.Display(ctx)
	r := Receipt{
		OrderID:     o.ID,
		EmployeeRef: ref,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		IssuedAt:    uc.now(),
		Total:       money.Project(o.Total, cur),
	}
	for _, l := range o.Lines {
		r.Lines = append(r.Lines, ReceiptLine{MealName: l.MealName, Price: money.Project(l.Price, cur)})
	}
	pdfBytes, err = uc.receipts.GenerateReceiptPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("order: generar comprobante: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido-%s.pdf", o.ID), nil
}

// subjectRef referencia de empleado de la identidad; false si no puede pedir.
func subjectRef(id entity.Identity) (string, bool) {
	subject, ok := id.(entity.OrderSubject)
	if !ok || subject.OrderSubjectRef() == "" {
		return "", false
	}
	return subject.OrderSubjectRef(), true
}

func toOrderResponse(o entity.Order, cur money.Currency) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{MealID: l.MealID, MealName: l.MealName, Price: money.Project(l.Price, cur)})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		Status:    o.Status,
		Lines:     lines,
		Total:     money.Project(o.Total, cur),
		CreatedAt: o.CreatedAt,
	}
}
