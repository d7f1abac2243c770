package html

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatMoney renders whole dollars with grouping: 125000 -> "$125,000".
func formatMoney(in any, _ any) (any, error) {
	n, ok := toInt(in)
	if !ok {
		return fmt.Sprint(in), nil
	}
	if n < 0 {
		return printer.Sprintf("-$%d", -n), nil
	}
	return printer.Sprintf("$%d", n), nil
}

// formatNumber renders an integer with grouping: 1234 -> "1,234".
func formatNumber(in any, _ any) (any, error) {
	n, ok := toInt(in)
	if !ok {
		return fmt.Sprint(in), nil
	}
	return printer.Sprintf("%d", n), nil
}

func toInt(in any) (int64, bool) {
	switch v := in.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(math.Round(v)), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}
