package service

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/limbo/medtrack/pkg/schedule"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, _, err := schedule.ParseClock(fl.Field().String())
			return err == nil
		})
		validate.RegisterValidation("iana_tz", func(fl validator.FieldLevel) bool {
			_, err := time.LoadLocation(fl.Field().String())
			return err == nil
		})
	})
}
