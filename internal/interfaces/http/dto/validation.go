package dto

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the custom binding rules on gin's
// validator engine. Safe to call more than once.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(decimalToString, decimal.Decimal{})
	_ = v.RegisterValidation("decimalstring", validateDecimalString)
}

// decimalToString exposes decimal fields to the validator as their
// exact string form so string rules apply to them.
func decimalToString(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// decimalstring accepts a money field: a parseable, non-negative
// decimal. Quantities carry their sign elsewhere; money never does.
func validateDecimalString(fl validator.FieldLevel) bool {
	raw, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(raw)
	return err == nil && !d.IsNegative()
}
