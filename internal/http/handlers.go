package http

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"spendtrack/internal/core"
	"spendtrack/internal/export"
	"spendtrack/internal/log"
)

type dashboardResponse struct {
	Total      string           `json:"total"`
	Entries    int              `json:"entries"`
	First      string           `json:"first_date,omitempty"`
	Last       string           `json:"last_date,omitempty"`
	Recent     []expensePayload `json:"recent"`
	ByCategory []categoryTotal  `json:"by_category"`
	Monthly    []monthTotal     `json:"monthly"`
	Budget     []budgetFlag     `json:"budget_flags"`
}

type categoryTotal struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type dayTotal struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

type monthTotal struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

type budgetFlag struct {
	Category  string `json:"category"`
	Total     string `json:"total"`
	Threshold string `json:"threshold"`
	Level     string `json:"level"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Dashboard(r.Context(), time.Now())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "dashboard failed", log.FieldError, err)
		writeServiceError(w, err)
		return
	}

	resp := dashboardResponse{
		Total:      d.Total.String(),
		Entries:    d.Entries,
		Recent:     toPayloads(d.Recent),
		ByCategory: categoryTotals(d.ByCategory),
		Monthly:    monthTotals(d.Monthly),
		Budget:     budgetFlags(d.Budget),
	}
	if !d.First.IsEmpty() {
		resp.First = d.First.String()
		resp.Last = d.Last.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// indexedExpense pairs a row with its position in the full ledger, so
// filtered listings still carry usable edit/delete targets.
type indexedExpense struct {
	Index int `json:"index"`
	expensePayload
}

type listResponse struct {
	Expenses []indexedExpense `json:"expenses"`
	Count    int              `json:"count"`
	Total    string           `json:"total"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := s.svc.List(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list failed", log.FieldError, err)
		writeServiceError(w, err)
		return
	}

	resp := listResponse{Expenses: []indexedExpense{}}
	var cents int64
	for i, e := range rows {
		if !f.Matches(e) {
			continue
		}
		resp.Expenses = append(resp.Expenses, indexedExpense{Index: i, expensePayload: toPayload(e)})
		cents += e.Amount.Cents
	}
	resp.Count = len(resp.Expenses)
	resp.Total = core.Money{Cents: cents}.String()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	e, ok := s.decodeExpense(w, r)
	if !ok {
		return
	}
	if err := s.svc.Add(r.Context(), e); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayload(e))
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	e, ok := s.decodeExpense(w, r)
	if !ok {
		return
	}
	if err := s.svc.Edit(r.Context(), index, e); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.svc.Delete(r.Context(), index); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.UndoLast(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(removed))
}

func (s *Server) handleSummaryByCategory(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ByCategory []categoryTotal `json:"by_category"`
		GrandTotal string          `json:"grand_total"`
	}{
		ByCategory: categoryTotals(core.SummarizeByCategory(rows)),
		GrandTotal: core.GrandTotal(rows).String(),
	})
}

func (s *Server) handleSummaryByDate(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}
	totals := core.SummarizeByDay(rows)
	out := make([]dayTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, dayTotal{Date: t.Day.String(), Total: t.Total.String()})
	}
	writeJSON(w, http.StatusOK, struct {
		ByDate     []dayTotal `json:"by_date"`
		GrandTotal string     `json:"grand_total"`
	}{ByDate: out, GrandTotal: core.GrandTotal(rows).String()})
}

func (s *Server) handleSummaryByMonth(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.filteredRows(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ByMonth    []monthTotal `json:"by_month"`
		GrandTotal string       `json:"grand_total"`
	}{
		ByMonth:    monthTotals(core.SummarizeByMonth(rows)),
		GrandTotal: core.GrandTotal(rows).String(),
	})
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	flags, err := s.svc.BudgetFlags(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Flags []budgetFlag `json:"budget_flags"`
	}{Flags: budgetFlags(flags)})
}

// handleExport streams the current view (or the whole ledger with
// scope=all) as a CSV attachment. With save=true a copy also lands in
// the reports directory.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefix := "view"
	if r.URL.Query().Get("scope") == "all" {
		f = core.Filter{}
		prefix = "all"
	}

	rows, err := s.svc.Filtered(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := export.CSV(rows)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "export failed",
			log.FieldOperation, log.OpExport, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	name := export.Filename(prefix, time.Now())
	if r.URL.Query().Get("save") == "true" {
		if err := s.saveReport(name, data); err != nil {
			s.logger.ErrorContext(r.Context(), "save report failed",
				log.FieldOperation, log.OpExport, log.FieldError, err)
			writeError(w, http.StatusInternalServerError, "save report failed")
			return
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) saveReport(name string, data []byte) error {
	if err := export.EnsureReportsDir(s.reportsDir); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.reportsDir, name), data, 0o644)
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	labels, err := s.svc.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: labels})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.svc.AddCategory(r.Context(), req.Label); err != nil {
		writeServiceError(w, err)
		return
	}
	labels, err := s.svc.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoriesResponse{Categories: labels})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteCategory(r.Context(), r.PathValue("label")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeExpense(w http.ResponseWriter, r *http.Request) (core.Expense, bool) {
	var p expensePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return core.Expense{}, false
	}
	e, err := p.toExpense()
	if err != nil {
		writeServiceError(w, err)
		return core.Expense{}, false
	}
	return e, true
}

func (s *Server) filteredRows(w http.ResponseWriter, r *http.Request) ([]core.Expense, bool) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	rows, err := s.svc.Filtered(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return rows, true
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return index, true
}

func categoryTotals(in []core.CategoryTotal) []categoryTotal {
	out := make([]categoryTotal, 0, len(in))
	for _, t := range in {
		out = append(out, categoryTotal{Category: t.Category, Total: t.Total.String()})
	}
	return out
}

func monthTotals(in []core.MonthTotal) []monthTotal {
	out := make([]monthTotal, 0, len(in))
	for _, t := range in {
		out = append(out, monthTotal{Month: t.Month, Total: t.Total.String()})
	}
	return out
}

func budgetFlags(in []core.BudgetFlag) []budgetFlag {
	out := make([]budgetFlag, 0, len(in))
	for _, f := range in {
		out = append(out, budgetFlag{
			Category:  f.Category,
			Total:     f.Total.String(),
			Threshold: f.Threshold.String(),
			Level:     string(f.Level),
		})
	}
	return out
}
