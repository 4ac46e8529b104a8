package portfolio

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Validation errors carry the user-facing message directly; they are shown
// inline next to the form that raised them and never reach the network.
var (
	ErrCodeRequired      = errors.New("请输入资产代码。")
	ErrFundCodeRequired  = errors.New("请输入基金代码。")
	ErrInvalidUnits      = errors.New("请输入有效的持仓份额/股数。")
	ErrInvalidCostPrice  = errors.New("请输入有效的成本价。")
	ErrInvalidFundAmount = errors.New("请输入有效的持仓金额。")
)

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ParseAmount parses a user-entered numeric field. The bool reports whether
// the input is a finite number; range checks are the caller's concern.
func ParseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidatePositionInput checks create/update form input before submission.
func ValidatePositionInput(code string, units, costPrice float64) error {
	if strings.TrimSpace(code) == "" {
		return ErrCodeRequired
	}
	if !positiveFinite(units) {
		return ErrInvalidUnits
	}
	if !positiveFinite(costPrice) {
		return ErrInvalidCostPrice
	}
	return nil
}

// ValidateImportInput checks fund import form input before submission.
func ValidateImportInput(code string, amount float64) error {
	if strings.TrimSpace(code) == "" {
		return ErrFundCodeRequired
	}
	if !positiveFinite(amount) {
		return ErrInvalidFundAmount
	}
	return nil
}
