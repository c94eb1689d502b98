package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/bnpl"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
)

const defaultTransactionLimit = 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseCriteria reads filter criteria from query parameters. An absent or
// empty period means no time constraint.
func parseCriteria(r *http.Request) (core.FilterCriteria, error) {
	q := r.URL.Query()
	period, err := core.ParsePeriod(q.Get("period"))
	if err != nil {
		return core.FilterCriteria{}, err
	}
	return core.FilterCriteria{
		Bank:           strings.TrimSpace(q.Get("bank")),
		Category:       strings.TrimSpace(q.Get("category")),
		Classification: strings.TrimSpace(q.Get("classification")),
		Period:         period,
	}, nil
}

func criteriaCacheKey(c core.FilterCriteria) string {
	return fmt.Sprintf("%s|%s|%s|%s", c.Bank, c.Category, c.Classification, c.Period)
}

type summaryResponse struct {
	core.Summary
	IncomePercent  float64 `json:"income_percent"`
	ExpensePercent float64 `json:"expense_percent"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := criteriaCacheKey(criteria)
	if resp, found := s.summaryCache.Get(key); found {
		slog.DebugContext(r.Context(), "Summary cache hit", "key", key)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	records, err := s.ledger.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	filtered := core.ApplyFilters(records, criteria, time.Now())
	summary := core.Aggregate(filtered)
	incomePct, expensePct := core.BarPercents(summary.Income, summary.Expenses)

	resp := summaryResponse{
		Summary:        summary,
		IncomePercent:  incomePct,
		ExpensePercent: expensePct,
	}
	s.summaryCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

type transactionsResponse struct {
	Transactions []core.TransactionRecord `json:"transactions"`
	Total        int                      `json:"total"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := defaultTransactionLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	records, err := s.ledger.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	filtered := core.ApplyFilters(records, criteria, time.Now())
	writeJSON(w, http.StatusOK, transactionsResponse{
		Transactions: core.MostRecent(filtered, limit),
		Total:        len(filtered),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	kind, err := core.ParseReportKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if report, found := s.reportCache.Get(string(kind)); found {
		slog.DebugContext(r.Context(), "Report cache hit", "kind", kind)
		writeJSON(w, http.StatusOK, report)
		return
	}

	// Reports always recompute from the full history, never from a
	// filtered view.
	records, err := s.ledger.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	report, err := core.BuildReport(kind, records, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.reportCache.Set(string(kind), report)
	writeJSON(w, http.StatusOK, report)
}

type balanceEntry struct {
	Bank    string  `json:"bank"`
	Key     string  `json:"key"`
	Balance float64 `json:"balance"`
}

type balancesResponse struct {
	Balances []balanceEntry          `json:"balances"`
	Total    float64                 `json:"total"`
	Findings []core.BreakdownFinding `json:"findings,omitempty"`
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.ledger.Balances(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load balances", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load balances")
		return
	}

	entries := make([]balanceEntry, 0, len(balances))
	for raw, b := range balances {
		entries = append(entries, balanceEntry{
			Bank:    core.CanonicalBankName(raw),
			Key:     core.BankKey(raw),
			Balance: b.Total(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	writeJSON(w, http.StatusOK, balancesResponse{
		Balances: entries,
		Total:    core.TotalBalances(balances),
		Findings: core.CheckBreakdowns(balances),
	})
}

type bnplPayment struct {
	bnpl.Payment
	DaysLeft int  `json:"days_left"`
	Urgent   bool `json:"urgent"`
}

type bnplResponse struct {
	Payments    []bnplPayment `json:"payments"`
	Outstanding float64       `json:"outstanding"`
}

func (s *Server) handleBNPL(w http.ResponseWriter, r *http.Request) {
	schedule, err := s.ledger.Schedule(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load installment schedule", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load installment schedule")
		return
	}

	now := time.Now()
	pending := schedule.Pending()
	payments := make([]bnplPayment, 0, len(pending))
	for _, p := range pending {
		payments = append(payments, bnplPayment{
			Payment:  p,
			DaysLeft: p.DaysLeft(now),
			Urgent:   p.Urgent(now),
		})
	}

	writeJSON(w, http.StatusOK, bnplResponse{
		Payments:    payments,
		Outstanding: schedule.Outstanding(),
	})
}

type createTransactionRequest struct {
	Bank            string  `json:"bank"`
	Amount          float64 `json:"amount"`
	Merchant        string  `json:"merchant"`
	Category        string  `json:"category"`
	Classification  string  `json:"classification"`
	TransactionType string  `json:"transactionType"`
	Note            string  `json:"note"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := core.TransactionRecord{
		Bank:            strings.TrimSpace(req.Bank),
		Amount:          req.Amount,
		Merchant:        strings.TrimSpace(req.Merchant),
		Category:        strings.TrimSpace(req.Category),
		Classification:  strings.TrimSpace(req.Classification),
		TransactionType: strings.TrimSpace(req.TransactionType),
		Note:            strings.TrimSpace(req.Note),
		Confirmed:       true,
	}

	saved, err := s.service.AddTransaction(r.Context(), rec, "http")
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrEmptyBank) || errors.Is(err, core.ErrInvalidTimestamp) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save transaction", "error", err, "bank", rec.Bank, "amount", rec.Amount)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.InvalidateCaches()
	writeJSON(w, http.StatusCreated, saved)
}
