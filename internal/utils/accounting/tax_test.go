package accounting_test

import (
	"testing"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	"github.com/quipuerp/accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSplitTax_WorkedExample(t *testing.T) {
	// 118 gross at 18% IGV splits into 100 net + 18 tax.
	split, err := accounting.SplitTax(dec("118"), dec("0.18"))
	require.NoError(t, err)

	assert.Equal(t, "100.00", split.Net.StringFixed(2))
	assert.Equal(t, "18.00", split.Tax.StringFixed(2))
	assert.Equal(t, "118.00", split.Amount.StringFixed(2))
}

func TestSplitTax_AmountAlwaysEqualsNetPlusTax(t *testing.T) {
	cases := []struct{ gross, rate string }{
		{"118", "0.18"},
		{"0", "0.18"},
		{"0.01", "0.18"},
		{"99.99", "0.18"},
		{"1234.56", "0.18"},
		{"100", "0"},
		{"333.33", "0.10"},
		{"1", "0.999"},
	}
	for _, tc := range cases {
		split, err := accounting.SplitTax(dec(tc.gross), dec(tc.rate))
		require.NoError(t, err, "gross=%s rate=%s", tc.gross, tc.rate)

		assert.True(t, split.Amount.Equal(split.Net.Add(split.Tax)),
			"gross=%s rate=%s: amount %s != net %s + tax %s",
			tc.gross, tc.rate, split.Amount, split.Net, split.Tax)
		assert.True(t, split.Amount.Equal(accounting.Round2(dec(tc.gross))),
			"gross=%s rate=%s: amount %s drifted from gross", tc.gross, tc.rate, split.Amount)
	}
}

func TestSplitTax_RejectsInvalidInputs(t *testing.T) {
	_, err := accounting.SplitTax(dec("-1"), dec("0.18"))
	assert.Error(t, err)

	_, err = accounting.SplitTax(dec("100"), dec("1"))
	assert.Error(t, err)

	_, err = accounting.SplitTax(dec("100"), dec("-0.1"))
	assert.Error(t, err)
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "0.13", accounting.Round2(dec("0.125")).StringFixed(2))
	assert.Equal(t, "-0.13", accounting.Round2(dec("-0.125")).StringFixed(2))
	assert.Equal(t, "2.00", accounting.Round2(dec("1.995")).StringFixed(2))
}

func TestValidateBalance(t *testing.T) {
	balanced := []domain.JournalLine{
		{AccountCode: "6011", Debit: dec("100"), Credit: decimal.Zero},
		{AccountCode: "4011", Debit: dec("18"), Credit: decimal.Zero},
		{AccountCode: "1011", Debit: decimal.Zero, Credit: dec("118")},
	}
	assert.NoError(t, accounting.ValidateBalance(balanced))

	unbalanced := []domain.JournalLine{
		{AccountCode: "6011", Debit: dec("100"), Credit: decimal.Zero},
		{AccountCode: "1011", Debit: decimal.Zero, Credit: dec("118")},
	}
	assert.ErrorIs(t, accounting.ValidateBalance(unbalanced), apperrors.ErrUnbalanced)
}
