package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator with colourgrid's custom rules.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		// cells_log2 must split evenly between the colour components.
		_ = v.RegisterValidation("cells_multiple", func(fl validator.FieldLevel) bool {
			cells := fl.Field().Int()
			if cells == 0 {
				return true
			}
			components := fl.Parent().FieldByName("Components").Int()
			return components > 0 && cells%components == 0
		})

		validateInst = v
	})

	return validateInst
}

// convertValidationError turns validator errors into readable messages keyed
// by their YAML path.
func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	msgs := make([]error, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, fmt.Errorf("%s: %s", yamlPath(fe), describe(fe)))
	}
	return errors.Join(msgs...)
}

func yamlPath(fe validator.FieldError) string {
	// Namespace is "Config.server.addr"; drop the root type.
	_, rest, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return rest
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hostname_port":
		return fmt.Sprintf("%q is not a host:port address", fe.Value())
	case "oneof":
		return fmt.Sprintf("%v must be one of [%s]", fe.Value(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%v must be at least %s", fe.Value(), fe.Param())
	case "max":
		return fmt.Sprintf("%v must be at most %s", fe.Value(), fe.Param())
	case "cells_multiple":
		return fmt.Sprintf("%v must be a multiple of grid.components", fe.Value())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
