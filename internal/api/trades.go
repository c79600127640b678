package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ledger-core/internal/journal"
	"ledger-core/internal/rules"
	"ledger-core/pkg/db"

	"github.com/gin-gonic/gin"
)

// tradeRequest is the journal submission payload. Numeric fields stay strings
// end to end; the evaluator owns parsing.
type tradeRequest struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	TradeDate   string `json:"trade_date"`
	rules.Candidate
}

// evaluationView mirrors the EvaluationResult shape the dashboard consumes.
type evaluationView struct {
	RewardOk         *bool    `json:"rewardOk"`
	RiskOk           *bool    `json:"riskOk"`
	RROk             *bool    `json:"rrOk"`
	Net              float64  `json:"net"`
	Messages         []string `json:"messages"`
	BigLoss          bool     `json:"bigLoss"`
	MaxTradesReached bool     `json:"maxTradesReached"`
	EntryPriceError  *string  `json:"entryPriceError"`
	ExitPriceError   *string  `json:"exitPriceError"`
}

func viewOf(r rules.Result) evaluationView {
	msgs := r.Messages
	if msgs == nil {
		msgs = []string{}
	}
	return evaluationView{
		RewardOk:         r.RewardOk,
		RiskOk:           r.RiskOk,
		RROk:             r.RROk,
		Net:              r.Net.InexactFloat64(),
		Messages:         msgs,
		BigLoss:          r.BigLoss,
		MaxTradesReached: r.MaxTradesReached,
		EntryPriceError:  r.EntryPriceError,
		ExitPriceError:   r.ExitPriceError,
	}
}

func (t *tradeRequest) normalize() string {
	t.Category = strings.TrimSpace(t.Category)
	t.Subcategory = strings.TrimSpace(t.Subcategory)
	if t.Category == "" || t.Subcategory == "" {
		return "category and subcategory are required"
	}
	if t.TradeDate == "" {
		t.TradeDate = time.Now().Format("2006-01-02")
	}
	return ""
}

// createTrade persists a candidate through the journal manager. The manager's
// verdict is authoritative: a client that passed its own CanSubmit gate can
// still be turned away here, and must treat this answer as final.
func (s *Server) createTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "INVALID_PAYLOAD",
			"error": "invalid request payload",
		})
		return
	}
	if msg := req.normalize(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "MISSING_FIELDS", "error": msg})
		return
	}

	entry, result, err := s.Journal.SubmitTrade(c.Request.Context(), CurrentUserID(c),
		req.Category, req.Subcategory, req.TradeDate, req.Candidate)
	if err != nil {
		s.tradeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"trade":      entry,
		"evaluation": viewOf(result),
	})
}

// evaluateTrade is the dry-run endpoint: same inputs as createTrade, nothing
// persisted. The dashboard calls it on every form edit.
func (s *Server) evaluateTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "INVALID_PAYLOAD",
			"error": "invalid request payload",
		})
		return
	}
	if msg := req.normalize(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "MISSING_FIELDS", "error": msg})
		return
	}

	result, err := s.Journal.Evaluate(c.Request.Context(), CurrentUserID(c),
		req.Category, req.Subcategory, req.TradeDate, req.Candidate)
	if err != nil {
		s.tradeError(c, err)
		return
	}

	c.JSON(http.StatusOK, viewOf(result))
}

func (s *Server) getDaySummary(c *gin.Context) {
	category := c.Query("category")
	subcategory := c.Query("subcategory")
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if category == "" || subcategory == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "MISSING_FIELDS",
			"error": "category and subcategory are required",
		})
		return
	}

	sum, err := s.Journal.DaySummary(c.Request.Context(), CurrentUserID(c), category, subcategory, date)
	if err != nil {
		s.tradeError(c, err)
		return
	}
	if sum.Entries == nil {
		sum.Entries = []db.TradeEntry{}
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) getMonthSummary(c *gin.Context) {
	category := c.Query("category")
	subcategory := c.Query("subcategory")
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if category == "" || subcategory == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "MISSING_FIELDS",
			"error": "category and subcategory are required",
		})
		return
	}

	sum, err := s.Journal.MonthSummary(c.Request.Context(), CurrentUserID(c), category, subcategory, month)
	if err != nil {
		s.tradeError(c, err)
		return
	}
	if sum.Days == nil {
		sum.Days = []journal.DayRollup{}
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) deleteTrade(c *gin.Context) {
	err := s.Journal.DeleteTrade(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		s.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// tradeError maps journal failures onto HTTP statuses: the admission cap is a
// conflict, other rejections are bad requests, everything else is a 5xx.
func (s *Server) tradeError(c *gin.Context, err error) {
	var rej *journal.RejectError
	if errors.As(err, &rej) {
		status := http.StatusBadRequest
		if rej.Code == journal.CodeDailyCapReached {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"code": rej.Code, "error": rej.Message})
		return
	}
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "record not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
}
