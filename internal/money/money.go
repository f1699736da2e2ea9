package money

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format は最小通貨単位の金額とISO通貨コードを表示用文字列にする。
// 例: (1000, "usd") -> "US$ 10.00"
// 小数桁は通貨ごとの定義に従う（JPYは0桁など）。
func Format(unitAmount int64, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("invalid currency %q: %w", code, err)
	}

	// 最小単位→主単位
	scale, _ := currency.Cash.Rounding(unit)
	value := float64(unitAmount) / math.Pow10(scale)

	return printer.Sprintf("%v", currency.Symbol(unit.Amount(value))), nil
}

// MustFormat は表示専用の場面で使う。変換できない通貨はコードをそのまま添える。
func MustFormat(unitAmount int64, code string) string {
	s, err := Format(unitAmount, code)
	if err != nil {
		return fmt.Sprintf("%d %s", unitAmount, code)
	}
	return s
}
