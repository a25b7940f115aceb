package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/domain/models"
	"github.com/mamadbah2/stockbot/internal/service/commands"
)

// Ledger is the set of engine operations exposed over REST.
type Ledger interface {
	Sell(ctx context.Context, item, quantity, price string) models.Outcome
	Buy(ctx context.Context, item, quantity, price string) models.Outcome
	Expense(ctx context.Context, title, amount string) models.Outcome
	Stock(ctx context.Context, item string) models.Outcome
	Profit(ctx context.Context) models.Outcome
}

// LedgerHandler serves the structured bookkeeping API. Every response body is an outcome.
type LedgerHandler struct {
	ledger     Ledger
	dispatcher commands.Dispatcher
	logger     *zap.Logger
}

// NewLedgerHandler constructs the REST adapter.
func NewLedgerHandler(ledger Ledger, dispatcher commands.Dispatcher, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{ledger: ledger, dispatcher: dispatcher, logger: logger}
}

// Sell handles POST /api/sell.
func (h *LedgerHandler) Sell(c *gin.Context) {
	var req models.TradeRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.ledger.Sell(c.Request.Context(), req.Item, req.Quantity.String(), req.Price.String()))
}

// Buy handles POST /api/buy.
func (h *LedgerHandler) Buy(c *gin.Context) {
	var req models.TradeRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.ledger.Buy(c.Request.Context(), req.Item, req.Quantity.String(), req.Price.String()))
}

// Expense handles POST /api/expense.
func (h *LedgerHandler) Expense(c *gin.Context) {
	var req models.ExpenseRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.ledger.Expense(c.Request.Context(), req.Title, req.Amount.String()))
}

// StockList handles GET /api/stock.
func (h *LedgerHandler) StockList(c *gin.Context) {
	h.respond(c, h.ledger.Stock(c.Request.Context(), ""))
}

// StockItem handles GET /api/stock/:item.
func (h *LedgerHandler) StockItem(c *gin.Context) {
	h.respond(c, h.ledger.Stock(c.Request.Context(), c.Param("item")))
}

// Profit handles GET /api/profit.
func (h *LedgerHandler) Profit(c *gin.Context) {
	h.respond(c, h.ledger.Profit(c.Request.Context()))
}

// Command handles POST /api/command, running a raw chat command line.
func (h *LedgerHandler) Command(c *gin.Context) {
	var req models.CommandRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.dispatcher.HandleCommand(c.Request.Context(), req.Text, "api"))
}

func (h *LedgerHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("invalid api payload", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *LedgerHandler) respond(c *gin.Context, outcome models.Outcome) {
	c.JSON(statusFor(outcome), outcome)
}

func statusFor(outcome models.Outcome) int {
	if outcome.Success {
		return http.StatusOK
	}
	switch outcome.Kind {
	case models.KindParse, models.KindValidation:
		return http.StatusBadRequest
	case models.KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
