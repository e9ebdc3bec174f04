package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"todoapi/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}
}

func decode[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return nil
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

// ValidateList is Validate for a JSON array body; every element is validated.
func ValidateList[T any](r io.Reader, data *[]T) error {
	if err := decode(r, data); err != nil {
		return err
	}

	if *data == nil {
		return failure.BadRequestFromString("request body must be an array") //nolint:wrapcheck
	}

	return ValidateVar(*data, "dive")
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
