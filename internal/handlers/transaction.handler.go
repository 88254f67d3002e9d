package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/shopspring/decimal"
	"github.com/tdnguyen/debt-ledger/internal/model"
	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
)

type LedgerService interface {
	Append(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error)
	Update(ctx context.Context, id int64, p model.TransactionUpdateRequest) (*model.Transaction, error)
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.TransactionFilter, kind model.TransactionKind) ([]*model.Transaction, int64, error)
}

type TransactionHandler struct {
	svc LedgerService
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler) {
	e.GET("/transactions", h.ListTransactions)
	e.POST("/transactions", h.CreateTransaction)
	e.PUT("/transactions/{id}", h.UpdateTransaction)
	e.DELETE("/transactions/{id}", h.DeleteTransaction)
}

func NewTransactionHandler(ledgerService LedgerService) *TransactionHandler {
	return &TransactionHandler{
		svc: ledgerService,
	}
}

type createTransactionRequest struct {
	CustomerID      int64           `json:"customer_id"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Description     *string         `json:"description"`
	TransactionDate string          `json:"transaction_date"`
}

type updateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	TransactionDate *string          `json:"transaction_date"`
}

type transactionListResponse struct {
	Items []*model.Transaction `json:"items"`
	Total int64                `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *TransactionHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	var f model.TransactionFilter

	if v := queryInt(ctx, "customer_id"); v > 0 {
		id := int64(v)
		f.CustomerID = &id
	}
	f.Page = queryInt(ctx, "page")
	f.Limit = queryInt(ctx, "limit")

	kind := model.TransactionKind(query(ctx, "kind"))

	items, total, err := h.svc.List(ctx, f, kind)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, transactionListResponse{Items: items, Total: total})
}

func (h *TransactionHandler) CreateTransaction(ctx *xhttp.RequestCtx) {
	var req createTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	p := model.TransactionCreateRequest{
		CustomerID:  req.CustomerID,
		Kind:        model.TransactionKind(req.Kind),
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.TransactionDate != "" {
		t, err := parseDate(req.TransactionDate)
		if err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "invalid transaction_date: "+err.Error())
			return
		}
		p.TransactionDate = t
	}

	txn, err := h.svc.Append(ctx, p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, txn)
}

func (h *TransactionHandler) UpdateTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	var req updateTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	p := model.TransactionUpdateRequest{
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.TransactionDate != nil {
		var t time.Time
		if t, err = parseDate(*req.TransactionDate); err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "invalid transaction_date: "+err.Error())
			return
		}
		p.TransactionDate = &t
	}

	txn, err := h.svc.Update(ctx, id, p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, txn)
}

// DeleteTransaction is a soft delete: the row stays in storage, flagged
// out of every balance and listing.
func (h *TransactionHandler) DeleteTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.SoftDelete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.SetStatusCode(xhttp.StatusNoContent)
}
