package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/core"
	"spendtrack/internal/ledger"
	"spendtrack/internal/storage/memory"
)

func newTestServer(t *testing.T, rows []core.Expense) *Server {
	t.Helper()
	store := memory.NewWith(rows, nil)
	svc := ledger.NewService(store, store.Categories(), core.DefaultBudgets(), nil)
	s := NewServer(":0", svc, filepath.Join(t.TempDir(), "reports"), nil)
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s
}

func seedRows(t *testing.T) []core.Expense {
	t.Helper()
	mk := func(date, amount, category, desc string) core.Expense {
		d, err := core.ParseDate(date)
		require.NoError(t, err)
		m, err := core.ParseMoney(amount)
		require.NoError(t, err)
		return core.Expense{Date: d, Amount: m, Category: category, Description: desc}
	}
	return []core.Expense{
		mk("2024-01-05", "12.50", "Food", "lunch"),
		mk("2024-01-06", "30.00", "Transport", "train ticket"),
		mk("2024-02-01", "9.99", "Food", "groceries run"),
	}
}

func doRequest(s *Server, method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListExpensesWithFilter(t *testing.T) {
	s := newTestServer(t, seedRows(t))

	rec := doRequest(s, http.MethodGet, "/api/expenses?category=Food", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "22.49", resp.Total)
	// Indices refer to positions in the full ledger.
	assert.Equal(t, 0, resp.Expenses[0].Index)
	assert.Equal(t, 2, resp.Expenses[1].Index)
}

func TestListExpensesDateBoundsInclusive(t *testing.T) {
	s := newTestServer(t, seedRows(t))

	rec := doRequest(s, http.MethodGet, "/api/expenses?from=2024-01-06&to=2024-02-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestListExpensesRejectsBadDate(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(s, http.MethodGet, "/api/expenses?from=01-05-2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddExpense(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodPost, "/api/expenses", expensePayload{
		Date: "2024-03-01", Amount: "5.00", Category: "Food", Description: "coffee",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/expenses", nil)
	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestAddExpenseRejectsNonPositiveAmount(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodPost, "/api/expenses", expensePayload{
		Date: "2024-03-01", Amount: "0", Category: "Food",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/expenses", expensePayload{
		Date: "2024-03-01", Amount: "-5.00", Category: "Food",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEditExpenseOutOfRange(t *testing.T) {
	s := newTestServer(t, seedRows(t))

	rec := doRequest(s, http.MethodPut, "/api/expenses/99", expensePayload{
		Date: "2024-03-01", Amount: "5.00", Category: "Food",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(s, http.MethodPut, "/api/expenses/abc", expensePayload{
		Date: "2024-03-01", Amount: "5.00", Category: "Food",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteExpense(t *testing.T) {
	s := newTestServer(t, seedRows(t))

	rec := doRequest(s, http.MethodDelete, "/api/expenses/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/expenses", nil)
	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestUndoOnEmptyLedgerConflicts(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(s, http.MethodPost, "/api/expenses/undo", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUndoRemovesNewestRow(t *testing.T) {
	s := newTestServer(t, seedRows(t))

	rec := doRequest(s, http.MethodPost, "/api/expenses/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var removed expensePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &removed))
	assert.Equal(t, "2024-02-01", removed.Date)
}

func TestSummaryByCategoryOrdering(t *testing.T) {
	s := newTestServer(t, seedRows(t))

	rec := doRequest(s, http.MethodGet, "/api/summary/category", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ByCategory []categoryTotal `json:"by_category"`
		GrandTotal string          `json:"grand_total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ByCategory, 2)
	// Transport (30.00) outranks Food (22.49).
	assert.Equal(t, "Transport", resp.ByCategory[0].Category)
	assert.Equal(t, "52.49", resp.GrandTotal)
}

func TestExportReturnsCSVAttachment(t *testing.T) {
	s := newTestServer(t, seedRows(t))

	rec := doRequest(s, http.MethodGet, "/api/export?category=Food", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "expenses_view_")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Equal(t, "Date,Amount,Category,Description", lines[0])
	assert.Len(t, lines, 3) // header + 2 Food rows
}

func TestExportScopeAllIgnoresFilter(t *testing.T) {
	s := newTestServer(t, seedRows(t))

	rec := doRequest(s, http.MethodGet, "/api/export?category=Food&scope=all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "expenses_all_")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4) // header + all 3 rows
}

func TestCategoryRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp categoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Categories, "Food")

	rec = doRequest(s, http.MethodPost, "/api/categories", map[string]string{"label": "Coffee"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/categories", map[string]string{"label": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(s, http.MethodDelete, "/api/categories/Coffee", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// failingLedger is a LedgerStore whose every operation fails.
type failingLedger struct {
	err error
}

func (f *failingLedger) Load(context.Context) ([]core.Expense, error) { return nil, f.err }
func (f *failingLedger) Save(context.Context, []core.Expense) error   { return f.err }

func TestStorageFailureMapsToServerErrors(t *testing.T) {
	store := memory.New()
	svc := ledger.NewService(&failingLedger{err: errors.New("disk gone")},
		store.Categories(), core.DefaultBudgets(), nil)
	s := NewServer(":0", svc, filepath.Join(t.TempDir(), "reports"), nil)
	t.Cleanup(func() { s.rateLimiter.stop() })

	rec := doRequest(s, http.MethodGet, "/api/expenses", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doRequest(s, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExportSaveWritesReportFile(t *testing.T) {
	reportsDir := filepath.Join(t.TempDir(), "reports")
	store := memory.NewWith(seedRows(t), nil)
	svc := ledger.NewService(store, store.Categories(), core.DefaultBudgets(), nil)
	s := NewServer(":0", svc, reportsDir, nil)
	t.Cleanup(func() { s.rateLimiter.stop() })

	rec := doRequest(s, http.MethodGet, "/api/export?save=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := os.ReadDir(reportsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "expenses_view_"))

	data, err := os.ReadFile(filepath.Join(reportsDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, rec.Body.Bytes(), data)
}

func TestSecurityHeadersPresent(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(s, http.MethodGet, "/api/expenses", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestMutationRateLimit(t *testing.T) {
	s := newTestServer(t, nil)

	var limited bool
	for i := 0; i < mutationsPerMinute+5; i++ {
		rec := doRequest(s, http.MethodPost, "/api/expenses", expensePayload{
			Date: "2024-03-01", Amount: "5.00", Category: "Food",
		})
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "expected rate limiter to trip")
}
