package coupons

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/youssefalsaeed/order-management-system/pkg/errors"
)

// Validator resolves a coupon code into a discount fraction in [0, 1].
// A real implementation would look the code up in a coupon catalog; the
// workflow only depends on this contract.
type Validator interface {
	Validate(ctx context.Context, code string) (decimal.Decimal, error)
}

// Static resolves every non-empty code to a fixed fraction. This mirrors the
// placeholder validation the system shipped with and exists so the order
// workflow can be exercised end to end before a coupon catalog lands.
type Static struct {
	fraction decimal.Decimal
}

// NewStatic returns a Static validator with the default 10% discount.
func NewStatic() *Static {
	return &Static{fraction: decimal.NewFromFloat(0.10)}
}

// NewStaticFraction returns a Static validator with the provided fraction.
func NewStaticFraction(fraction decimal.Decimal) (*Static, error) {
	if fraction.IsNegative() || fraction.GreaterThan(decimal.NewFromInt(1)) {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "discount fraction %s out of range [0,1]", fraction)
	}
	return &Static{fraction: fraction}, nil
}

func (s *Static) Validate(_ context.Context, code string) (decimal.Decimal, error) {
	if strings.TrimSpace(code) == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	return s.fraction, nil
}
