package api

import (
	"reflect"
	"strings"
	"sync"

	"api_vehicles/internal/cpf"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the cpf tag to gin's validator and makes field
// errors use JSON names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("cpf", validateCPF)
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}

func validateCPF(fl validator.FieldLevel) bool {
	return cpf.Valid(cpf.Normalize(fl.Field().String()))
}
