package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"anoa.com/langanalytics/internal/entity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// Register installs the domain tags on gin's binding validator. Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		if err = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
			return entity.IsValidLanguage(fl.Field().String())
		}); err != nil {
			return
		}
		err = v.RegisterValidation("org_status", func(fl validator.FieldLevel) bool {
			return entity.IsValidStatus(fl.Field().String())
		})
	})
	return err
}

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "language":
		return "Invalid language"
	case "org_status":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(entity.OrganizationStatuses, ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":              "name",
		"Head":              "head",
		"AmbassadorName":    "ambassador_name",
		"AmbassadorContact": "ambassador_contact",
		"Contact":           "contact",
		"Email":             "email",
		"Password":          "password",
		"Status":            "status",
		"Role":              "role",
		"Language":          "language",
		"OrgName":           "org_name",
		"OrgID":             "org_id",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
