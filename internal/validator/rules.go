package validator

import (
	"log"

	"whatyaneed_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует правила на основе statuses.go
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// правило не зарегистрировалось - приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-creatable-role': роль, доступная при регистрации (не admin)
	mustRegister("is-creatable-role", validateCreatableRole)

	// 'is-urgency': low / medium / high
	mustRegister("is-urgency", validateUrgency)
}

// Пустые значения не проверяем, для этого есть 'required'

func validateCreatableRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.UserRole(value).IsCreatable()
}

func validateUrgency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.UrgencyLevel(value).IsValid()
}
