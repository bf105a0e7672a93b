package utils

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var registerOnce sync.Once

// RegisterValidators adds the domain enum and id checks to gin's validator
// so DTOs can use them in binding tags. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() { err = registerValidators() })
	return err
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	rules := map[string]validator.Func{
		"climate": func(fl validator.FieldLevel) bool {
			return models.Climate(fl.Field().String()).Valid()
		},
		"soiltype": func(fl validator.FieldLevel) bool {
			return models.SoilType(fl.Field().String()).Valid()
		},
		"rainseason": func(fl validator.FieldLevel) bool {
			return models.RainSeason(fl.Field().String()).Valid()
		},
		"paymentmethod": func(fl validator.FieldLevel) bool {
			return models.PaymentMethod(fl.Field().String()).Valid()
		},
		"orderstatus": func(fl validator.FieldLevel) bool {
			return models.OrderStatus(fl.Field().String()).Valid()
		},
		"objectid": func(fl validator.FieldLevel) bool {
			_, err := bson.ObjectIDFromHex(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
