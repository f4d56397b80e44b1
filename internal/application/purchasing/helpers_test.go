package purchasing_test

import (
	"github.com/shopspring/decimal"
)

const (
	orgID  = "org-1"
	userID = "user-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptrBool(b bool) *bool        { return &b }
func ptrFloat(f float64) *float64 { return &f }
func ptrString(s string) *string  { return &s }
