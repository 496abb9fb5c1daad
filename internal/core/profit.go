package core

import "github.com/shopspring/decimal"

// ProfitStatus classifies a sale's profit figure.
type ProfitStatus string

const (
	StatusProfit    ProfitStatus = "Profit"
	StatusLoss      ProfitStatus = "Loss"
	StatusBreakEven ProfitStatus = "Break-even"
)

// ClassifyProfit maps a profit amount to its status: positive is Profit,
// negative is Loss, exactly zero is Break-even.
func ClassifyProfit(profit decimal.Decimal) ProfitStatus {
	switch profit.Sign() {
	case 1:
		return StatusProfit
	case -1:
		return StatusLoss
	default:
		return StatusBreakEven
	}
}
