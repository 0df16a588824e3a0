package accounting

import (
	"fmt"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimals, half away from zero (common currency
// rounding; shopspring's Round has exactly these semantics).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// TaxSplit is the result of extracting tax from a tax-inclusive gross total.
type TaxSplit struct {
	Net    decimal.Decimal
	Tax    decimal.Decimal
	Amount decimal.Decimal // Net + Tax, re-rounded
}

// SplitTax extracts the tax portion from a gross total at the given rate:
// net = round2(gross / (1+rate)), tax = round2(gross - net). The returned
// Amount always equals Net + Tax exactly, so a journal built from the split
// balances to the cent.
func SplitTax(gross, rate decimal.Decimal) (TaxSplit, error) {
	one := decimal.NewFromInt(1)
	if gross.IsNegative() {
		return TaxSplit{}, fmt.Errorf("gross total must not be negative, got %s", gross)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
		return TaxSplit{}, fmt.Errorf("tax rate must be in [0, 1), got %s", rate)
	}
	net := Round2(gross.Div(one.Add(rate)))
	tax := Round2(gross.Sub(net))
	return TaxSplit{
		Net:    net,
		Tax:    tax,
		Amount: Round2(net.Add(tax)),
	}, nil
}

// SumLines returns the debit and credit totals of a set of journal lines.
func SumLines(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateBalance checks the double-entry invariant on a set of lines.
func ValidateBalance(lines []domain.JournalLine) error {
	totalDebit, totalCredit := SumLines(lines)
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits sum to %s but credits sum to %s", apperrors.ErrUnbalanced, totalDebit, totalCredit)
	}
	return nil
}
