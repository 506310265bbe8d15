package domain_test

import (
	"testing"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(i int) *int {
	return &i
}

var usd = domain.Currency{CurrencyCode: "USD", Digits: 2, Rounding: dec("0.01")}

func TestLiquidationTax_ComputeAmount(t *testing.T) {
	retention := &domain.Tax{TaxID: "tax-1", Type: domain.TaxTypePercentage, Rate: dec("0.01")}
	fixed := &domain.Tax{TaxID: "tax-2", Type: domain.TaxTypeFixed, Amount: dec("2.5")}

	tests := []struct {
		name string
		line domain.LiquidationTax
		tax  *domain.Tax
		want decimal.Decimal
	}{
		{
			name: "manual line with tax recomputes from base with banker's rounding",
			line: domain.LiquidationTax{Manual: true, Base: dec("1234.50"), Amount: dec("0")},
			tax:  retention,
			want: dec("12.34"),
		},
		{
			name: "fixed tax uses quantity one",
			line: domain.LiquidationTax{Manual: true, Base: dec("999"), Amount: dec("0")},
			tax:  fixed,
			want: dec("2.5"),
		},
		{
			name: "non manual line keeps entered amount",
			line: domain.LiquidationTax{Manual: false, Base: dec("1000"), Amount: dec("7.777")},
			tax:  retention,
			want: dec("7.78"),
		},
		{
			name: "no tax keeps entered amount rounded",
			line: domain.LiquidationTax{Manual: true, Base: dec("1000"), Amount: dec("3.125")},
			tax:  nil,
			want: dec("3.12"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []domain.TaxResult
			if tt.tax != nil {
				results = domain.ComputeTaxes([]domain.Tax{*tt.tax}, tt.line.Base, decimal.NewFromInt(1))
			}
			got := tt.line.ComputeAmount(results, tt.tax, usd)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestLiquidationTax_ComputeAmount_RoundsWithGivenCurrency(t *testing.T) {
	retention := &domain.Tax{TaxID: "tax-1", Type: domain.TaxTypePercentage, Rate: dec("0.01")}
	jpy := domain.Currency{CurrencyCode: "JPY", Digits: 0, Rounding: dec("1")}
	line := domain.LiquidationTax{Manual: true, Base: dec("1234.50"), Amount: decimal.Zero}
	results := domain.ComputeTaxes([]domain.Tax{*retention}, line.Base, decimal.NewFromInt(1))

	assert.True(t, dec("12.34").Equal(line.ComputeAmount(results, retention, usd)))
	assert.True(t, dec("12").Equal(line.ComputeAmount(results, retention, jpy)))
}

func TestLiquidationTax_ComputeAmount_IgnoresResultsForOtherBase(t *testing.T) {
	retention := &domain.Tax{TaxID: "tax-1", Type: domain.TaxTypePercentage, Rate: dec("0.01")}
	line := domain.LiquidationTax{Manual: true, Base: dec("100"), Amount: dec("4")}
	stale := domain.ComputeTaxes([]domain.Tax{*retention}, dec("999"), decimal.NewFromInt(1))

	assert.True(t, dec("4").Equal(line.ComputeAmount(stale, retention, usd)))
}

func TestLiquidationTax_ApplyTax(t *testing.T) {
	baseCode, taxCode := "bc-1", "tc-1"
	tax := domain.Tax{
		TaxID:             "tax-1",
		Description:       "Retención 1%",
		InvoiceAccountID:  "acc-ret",
		InvoiceBaseCodeID: &baseCode,
		InvoiceBaseSign:   dec("-1"),
		InvoiceTaxCodeID:  &taxCode,
		InvoiceTaxSign:    dec("1"),
	}

	line := domain.NewLiquidationTax("liq-1")
	line.ApplyTax(tax, domain.OutLiquidation)

	require.NotNil(t, line.TaxID)
	assert.Equal(t, "tax-1", *line.TaxID)
	assert.Equal(t, "Retención 1%", line.Description)
	assert.Equal(t, "acc-ret", line.AccountID)
	assert.Equal(t, &baseCode, line.BaseCodeID)
	assert.True(t, dec("-1").Equal(line.BaseSign))
	assert.Equal(t, &taxCode, line.TaxCodeID)

	credit := domain.NewLiquidationTax("liq-2")
	credit.ApplyTax(tax, domain.OutCreditNote)
	assert.Empty(t, credit.AccountID, "credit notes do not take invoice booking fields")
	assert.True(t, dec("1").Equal(credit.BaseSign))
}

func TestLiquidationTax_ToMoveLine(t *testing.T) {
	taxCode := "tc-1"
	taxID := "tax-1"
	liq := domain.Liquidation{LiquidationID: "liq-1", Type: domain.OutLiquidation, PartyID: "party-1", CurrencyCode: "USD"}
	plain := domain.Account{AccountID: "acc-ret"}
	partyAccount := domain.Account{AccountID: "acc-ret", PartyRequired: true}

	t.Run("zero amount produces no line", func(t *testing.T) {
		line := domain.LiquidationTax{AccountID: "acc-ret", Amount: decimal.Zero}
		assert.Empty(t, line.ToMoveLine(liq, plain, decimal.Zero, "USD"))
	})

	t.Run("amount converting to zero produces no line", func(t *testing.T) {
		l := liq
		l.CurrencyCode = "JPY"
		line := domain.LiquidationTax{AccountID: "acc-ret", Amount: dec("0.3")}
		assert.Empty(t, line.ToMoveLine(l, plain, dec("0.00"), "USD"))
	})

	tests := []struct {
		name       string
		liqType    domain.LiquidationType
		amount     string
		wantDebit  string
		wantCredit string
	}{
		{"out liquidation positive is credit", domain.OutLiquidation, "100", "0", "100"},
		{"out liquidation negative is debit", domain.OutLiquidation, "-40", "40", "0"},
		{"in liquidation positive is debit", domain.InLiquidation, "100", "100", "0"},
		{"credit note negative is credit", domain.OutCreditNote, "-15.5", "0", "15.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := liq
			l.Type = tt.liqType
			line := domain.LiquidationTax{AccountID: "acc-ret", Description: "ret", Amount: dec(tt.amount)}

			got := line.ToMoveLine(l, plain, dec(tt.amount), "USD")

			require.Len(t, got, 1)
			assert.True(t, dec(tt.wantDebit).Equal(got[0].Debit), "debit %s", got[0].Debit)
			assert.True(t, dec(tt.wantCredit).Equal(got[0].Credit), "credit %s", got[0].Credit)
			assert.True(t, got[0].Debit.IsZero() != got[0].Credit.IsZero(), "exactly one side must be non-zero")
			assert.Nil(t, got[0].AmountSecondCurrency)
			assert.Nil(t, got[0].PartyID)
		})
	}

	t.Run("foreign currency records second amount on the booked side", func(t *testing.T) {
		l := liq
		l.CurrencyCode = "EUR"
		line := domain.LiquidationTax{AccountID: "acc-ret", Amount: dec("50"), TaxCodeID: &taxCode, TaxSign: dec("-1"), TaxID: &taxID}

		got := line.ToMoveLine(l, partyAccount, dec("55"), "USD")

		require.Len(t, got, 1)
		assert.True(t, dec("55").Equal(got[0].Credit))
		require.NotNil(t, got[0].AmountSecondCurrency)
		assert.True(t, dec("-50").Equal(*got[0].AmountSecondCurrency))
		assert.Equal(t, "EUR", *got[0].SecondCurrency)
		require.NotNil(t, got[0].PartyID)
		assert.Equal(t, "party-1", *got[0].PartyID)
		require.Len(t, got[0].TaxLines, 1)
		assert.Equal(t, "tc-1", got[0].TaxLines[0].CodeID)
		assert.True(t, dec("-55").Equal(got[0].TaxLines[0].Amount))
		assert.Equal(t, &taxID, got[0].TaxLines[0].TaxID)
	})
}

func TestSortTaxLines_NullsLast(t *testing.T) {
	lines := []domain.LiquidationTax{
		{LiquidationTaxID: "none-1"},
		{LiquidationTaxID: "seq-20", Sequence: intPtr(20)},
		{LiquidationTaxID: "none-2"},
		{LiquidationTaxID: "seq-10", Sequence: intPtr(10)},
	}

	domain.SortTaxLines(lines)

	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.LiquidationTaxID
	}
	assert.Equal(t, []string{"seq-10", "seq-20", "none-1", "none-2"}, ids)
	assert.Equal(t, 2, domain.SequenceNumber(lines, "seq-20"))
	assert.Equal(t, 0, domain.SequenceNumber(lines, "missing"))
}
