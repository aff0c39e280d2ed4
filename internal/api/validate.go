package api

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/financellm/financellm/internal/period"
)

var (
	registerOnce sync.Once
	nonSpace     = regexp.MustCompile(`\S`)
)

// registerValidations adds the custom tags used by request structs to gin's
// validator.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// "2024-12"
		_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
			_, _, err := period.ParseMonth(fl.Field().String())
			return err == nil
		})
		// not empty and not only whitespace
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return nonSpace.MatchString(fl.Field().String())
		})
	})
}
