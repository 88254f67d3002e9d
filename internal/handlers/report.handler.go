package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/tdnguyen/debt-ledger/internal/model"
	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
)

type ReportService interface {
	Summary(ctx context.Context) (*model.DebtSummary, error)
	Report(ctx context.Context, search string) (*model.DebtReport, error)
	ClassifyCustomer(b *model.CustomerBalance) model.DebtStatus
	Export(ctx context.Context) ([]byte, string, error)
}

type ReportHandler struct {
	svc ReportService
}

func RegisterReportRoutes(e *router.Group, h *ReportHandler) {
	e.GET("/summary", h.GetSummary)
	e.GET("/reports", h.GetReport)
	e.GET("/export", h.ExportWorkbook)
}

func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		svc: reportService,
	}
}

type reportResponse struct {
	Summary *model.DebtSummary        `json:"summary"`
	List    []customerBalanceResponse `json:"list"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *ReportHandler) GetSummary(ctx *xhttp.RequestCtx) {
	summary, err := h.svc.Summary(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, summary)
}

func (h *ReportHandler) GetReport(ctx *xhttp.RequestCtx) {
	report, err := h.svc.Report(ctx, query(ctx, "search"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	list := make([]customerBalanceResponse, 0, len(report.List))
	for _, b := range report.List {
		list = append(list, customerBalanceResponse{
			CustomerBalance: b,
			Status:          h.svc.ClassifyCustomer(b),
		})
	}
	writeJSON(ctx, xhttp.StatusOK, reportResponse{Summary: report.Summary, List: list})
}

// ExportWorkbook streams the xlsx snapshot as a download.
func (h *ReportHandler) ExportWorkbook(ctx *xhttp.RequestCtx) {
	data, filename, err := h.svc.Export(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(data)
}
