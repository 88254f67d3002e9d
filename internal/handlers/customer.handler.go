package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/tdnguyen/debt-ledger/internal/model"
	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
)

type CustomerService interface {
	Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error)
	Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
	GetWithBalance(ctx context.Context, id int64) (*model.CustomerBalance, error)
	ListWithBalances(ctx context.Context, f model.CustomerFilter) ([]*model.CustomerBalance, int64, error)
}

type CustomerHandler struct {
	svc CustomerService
}

func RegisterCustomerRoutes(e *router.Group, h *CustomerHandler) {
	e.GET("/customers", h.ListCustomers)
	e.POST("/customers", h.CreateCustomer)
	e.GET("/customers/{id}", h.GetCustomer)
	e.PUT("/customers/{id}", h.UpdateCustomer)
	e.DELETE("/customers/{id}", h.DeleteCustomer)
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: customerService,
	}
}

type customerRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

// customerBalanceResponse is a balance row plus its aging status, so the
// list screen colors rows without a second request.
type customerBalanceResponse struct {
	*model.CustomerBalance
	Status model.DebtStatus `json:"status"`
}

type customerListResponse struct {
	Items []customerBalanceResponse `json:"items"`
	Total int64                     `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *CustomerHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	f := model.CustomerFilter{
		Search: query(ctx, "search"),
		Page:   queryInt(ctx, "page"),
		Limit:  queryInt(ctx, "limit"),
	}

	items, total, err := h.svc.ListWithBalances(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customerListResponse{Items: withStatuses(items), Total: total})
}

func (h *CustomerHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var req customerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	c, err := h.svc.Create(ctx, model.CustomerCreateRequest{
		Name:  req.Name,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, c)
}

func (h *CustomerHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	b, err := h.svc.GetWithBalance(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customerBalanceResponse{
		CustomerBalance: b,
		Status:          model.ClassifyDebt(b.Balance, b.OldestDebtDate, time.Now()),
	})
}

func (h *CustomerHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	var req customerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	c, err := h.svc.Update(ctx, id, model.CustomerUpdateRequest{
		Name:  req.Name,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, c)
}

func (h *CustomerHandler) DeleteCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.SetStatusCode(xhttp.StatusNoContent)
}

func withStatuses(items []*model.CustomerBalance) []customerBalanceResponse {
	now := time.Now()
	out := make([]customerBalanceResponse, 0, len(items))
	for _, b := range items {
		out = append(out, customerBalanceResponse{
			CustomerBalance: b,
			Status:          model.ClassifyDebt(b.Balance, b.OldestDebtDate, now),
		})
	}
	return out
}
