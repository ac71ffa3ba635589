package controllers

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// RegisterValidators -> pasang validasi format "HH:MM" dan "YYYY-MM-DD" pada
// binding engine gin, dipakai lewat tag `clock` dan `dateformat`
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}
