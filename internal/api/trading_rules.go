package api

import (
	"net/http"
	"strings"

	"ledger-core/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ruleRequest struct {
	DepositAmount    float64 `json:"deposit_amount"`
	WithdrawalAmount float64 `json:"withdrawal_amount"`
	Risk             float64 `json:"risk"`
	Reward           float64 `json:"reward"`
	Ratio            string  `json:"ratio"`
	TradingDays      int     `json:"trading_days"`
}

// upsertRule creates or replaces the rule for a category+subcategory.
// Risk and reward are independent bounds; both must be non-negative, nothing
// forces reward above risk.
func (s *Server) upsertRule(c *gin.Context) {
	var req ruleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "INVALID_PAYLOAD",
			"error": "invalid request payload",
		})
		return
	}
	if req.Risk < 0 || req.Reward < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "NEGATIVE_BOUND",
			"error": "risk and reward must be non-negative",
		})
		return
	}

	category := strings.TrimSpace(c.Param("category"))
	subcategory := strings.TrimSpace(c.Param("subcategory"))
	if category == "" || subcategory == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "MISSING_FIELDS",
			"error": "category and subcategory are required",
		})
		return
	}

	rule := db.TradingRule{
		ID:               uuid.NewString(),
		UserID:           CurrentUserID(c),
		Category:         category,
		Subcategory:      subcategory,
		DepositAmount:    req.DepositAmount,
		WithdrawalAmount: req.WithdrawalAmount,
		Risk:             req.Risk,
		Reward:           req.Reward,
		Ratio:            req.Ratio,
		TradingDays:      req.TradingDays,
	}
	if err := s.Queries.UpsertTradingRule(c.Request.Context(), rule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	s.Journal.InvalidateRules(rule.UserID)

	stored, err := s.Queries.GetTradingRule(c.Request.Context(), rule.UserID, category, subcategory)
	if err != nil || stored == nil {
		c.JSON(http.StatusOK, rule)
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (s *Server) listRules(c *gin.Context) {
	list, err := s.Queries.ListTradingRules(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	if list == nil {
		list = []db.TradingRule{}
	}
	c.JSON(http.StatusOK, gin.H{"rules": list})
}

// getRule returns the rule for a category+subcategory. A missing rule is not
// an error: the dashboard renders the neutral "no rule" state from the null.
func (s *Server) getRule(c *gin.Context) {
	rule, err := s.Queries.GetTradingRule(c.Request.Context(), CurrentUserID(c),
		c.Param("category"), c.Param("subcategory"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rule": rule})
}

func (s *Server) deleteRule(c *gin.Context) {
	userID := CurrentUserID(c)
	err := s.Queries.DeleteTradingRule(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		s.tradeError(c, err)
		return
	}
	s.Journal.InvalidateRules(userID)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
