package api

import (
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"ledger-core/internal/events"
	"ledger-core/pkg/db"
	"ledger-core/pkg/i18n"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dayKeyPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ----------------------------------------
// Monthly financial summaries
// ----------------------------------------

func (s *Server) listSummaries(c *gin.Context) {
	list, err := s.Queries.ListMonthlySummaries(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	if list == nil {
		list = []db.MonthlySummary{}
	}
	c.JSON(http.StatusOK, gin.H{"summaries": list})
}

func (s *Server) upsertSummary(c *gin.Context) {
	month := c.Param("month")
	if !monthKeyPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "INVALID_MONTH",
			"error": "month must be YYYY-MM",
		})
		return
	}

	var req struct {
		Income     float64 `json:"income"`
		Expense    float64 `json:"expense"`
		Savings    float64 `json:"savings"`
		Investment float64 `json:"investment"`
		Notes      string  `json:"notes"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_PAYLOAD", "error": "invalid request payload"})
		return
	}

	sum := db.MonthlySummary{
		ID:         uuid.NewString(),
		UserID:     CurrentUserID(c),
		Month:      month,
		Income:     req.Income,
		Expense:    req.Expense,
		Savings:    req.Savings,
		Investment: req.Investment,
		Notes:      req.Notes,
	}
	if err := s.Queries.UpsertMonthlySummary(c.Request.Context(), sum); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}

	log.Printf(i18n.M().SummarySaved, month)
	if s.Bus != nil {
		s.Bus.Publish(events.EventSummaryUpdated, events.LedgerUpdate{
			Topic: events.EventSummaryUpdated,
			ID:    sum.ID,
			Month: month,
		})
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) deleteSummary(c *gin.Context) {
	err := s.Queries.DeleteMonthlySummary(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		s.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ----------------------------------------
// Loans
// ----------------------------------------

type loanRequest struct {
	Lender       string  `json:"lender"`
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interest_rate"`
	EMIAmount    float64 `json:"emi_amount"`
	PaidAmount   float64 `json:"paid_amount"`
	StartDate    string  `json:"start_date"`
	DueDate      string  `json:"due_date"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes"`
}

func (r *loanRequest) validate() string {
	r.Lender = strings.TrimSpace(r.Lender)
	if r.Lender == "" {
		return "lender is required"
	}
	if r.Principal <= 0 {
		return "principal must be positive"
	}
	if r.Status == "" {
		r.Status = db.LoanActive
	}
	if r.Status != db.LoanActive && r.Status != db.LoanClosed {
		return "status must be ACTIVE or CLOSED"
	}
	return ""
}

// loanView adds the derived outstanding amount to a stored loan.
type loanView struct {
	db.Loan
	Outstanding float64 `json:"outstanding"`
}

func loanViewOf(l db.Loan) loanView {
	out := l.Principal - l.PaidAmount
	if out < 0 {
		out = 0
	}
	return loanView{Loan: l, Outstanding: out}
}

func (s *Server) listLoans(c *gin.Context) {
	list, err := s.Queries.ListLoans(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	views := make([]loanView, 0, len(list))
	var totalOutstanding float64
	for _, l := range list {
		v := loanViewOf(l)
		views = append(views, v)
		if l.Status == db.LoanActive {
			totalOutstanding += v.Outstanding
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"loans":             views,
		"total_outstanding": totalOutstanding,
	})
}

func (s *Server) createLoan(c *gin.Context) {
	var req loanRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_PAYLOAD", "error": "invalid request payload"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_LOAN", "error": msg})
		return
	}

	loan := db.Loan{
		ID:           uuid.NewString(),
		UserID:       CurrentUserID(c),
		Lender:       req.Lender,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		EMIAmount:    req.EMIAmount,
		PaidAmount:   req.PaidAmount,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		Status:       req.Status,
		Notes:        req.Notes,
	}
	if err := s.Queries.CreateLoan(c.Request.Context(), loan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}

	log.Printf(i18n.M().LoanRecorded, loan.Lender, loan.Principal)
	c.JSON(http.StatusCreated, loanViewOf(loan))
}

func (s *Server) updateLoan(c *gin.Context) {
	var req loanRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_PAYLOAD", "error": "invalid request payload"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_LOAN", "error": msg})
		return
	}

	loan := db.Loan{
		ID:           c.Param("id"),
		UserID:       CurrentUserID(c),
		Lender:       req.Lender,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		EMIAmount:    req.EMIAmount,
		PaidAmount:   req.PaidAmount,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		Status:       req.Status,
		Notes:        req.Notes,
	}
	if err := s.Queries.UpdateLoan(c.Request.Context(), loan); err != nil {
		s.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanViewOf(loan))
}

func (s *Server) deleteLoan(c *gin.Context) {
	err := s.Queries.DeleteLoan(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		s.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ----------------------------------------
// Site expenses (kharch)
// ----------------------------------------

// expenseView carries the running total in entry order, so the dashboard can
// show the month climbing row by row.
type expenseView struct {
	db.Expense
	RunningTotal float64 `json:"running_total"`
}

func (s *Server) listExpenses(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if !monthKeyPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_MONTH", "error": "month must be YYYY-MM"})
		return
	}

	list, err := s.Queries.ListExpensesForMonth(c.Request.Context(), CurrentUserID(c), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}

	views := make([]expenseView, 0, len(list))
	var running float64
	for _, e := range list {
		running += e.Amount
		views = append(views, expenseView{Expense: e, RunningTotal: running})
	}
	c.JSON(http.StatusOK, gin.H{
		"month":    month,
		"expenses": views,
		"total":    running,
	})
}

func (s *Server) createExpense(c *gin.Context) {
	var req struct {
		Title    string  `json:"title"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		SpentOn  string  `json:"spent_on"`
		Notes    string  `json:"notes"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_PAYLOAD", "error": "invalid request payload"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "INVALID_EXPENSE",
			"error": "title and a positive amount are required",
		})
		return
	}
	if req.SpentOn == "" {
		req.SpentOn = time.Now().Format("2006-01-02")
	}
	if !dayKeyPattern.MatchString(req.SpentOn) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_DATE", "error": "spent_on must be YYYY-MM-DD"})
		return
	}

	exp := db.Expense{
		ID:       uuid.NewString(),
		UserID:   CurrentUserID(c),
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		SpentOn:  req.SpentOn,
		Notes:    req.Notes,
	}
	if err := s.Queries.CreateExpense(c.Request.Context(), exp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}

	log.Printf(i18n.M().ExpenseRecorded, exp.Title, exp.Amount)
	if s.Bus != nil {
		s.Bus.Publish(events.EventExpenseAdded, events.LedgerUpdate{
			Topic:  events.EventExpenseAdded,
			ID:     exp.ID,
			Month:  exp.SpentOn[:7],
			Amount: exp.Amount,
		})
	}
	c.JSON(http.StatusCreated, exp)
}

func (s *Server) deleteExpense(c *gin.Context) {
	err := s.Queries.DeleteExpense(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		s.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
