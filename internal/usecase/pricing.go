package usecase

import (
	"github.com/shopspring/decimal"

	"sessioncart/internal/domain/model"
)

// 一律10%
var TaxRate = decimal.New(10, -2)

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// 合計は商品の現在価格で計算する（price_at_timeは使わない）
func ComputeTotals(lines []model.CartLine) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	tax := subtotal.Mul(TaxRate)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// 金額は小数2桁の文字列で返す
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
