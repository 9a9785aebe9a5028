package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the bookkeeping binding tags to a validator:
//
//	money     decimal amount accepted by domain.ParseMoneyStrict
//	digits    account number made of digits only
//	side      DEBIT or CREDIT, any case
//	category  one of the five account categories, any case
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"money": func(fl validator.FieldLevel) bool {
			_, err := domain.ParseMoneyStrict(fl.Field().String())
			return err == nil
		},
		"digits": func(fl validator.FieldLevel) bool {
			return domain.IsDigitsOnly(fl.Field().String())
		},
		"side": func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseSide(fl.Field().String())
			return ok
		},
		"category": func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseAccountCategory(fl.Field().String())
			return ok
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
