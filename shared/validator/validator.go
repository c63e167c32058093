package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"smartpark/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	validate *val.Validate

	slotIDPattern  = regexp.MustCompile(`^A\d+F\d+S\d+$`)
	vehiclePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]*$`)
)

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("slotid", func(fl val.FieldLevel) bool {
		return slotIDPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("vehicle", func(fl val.FieldLevel) bool {
		return vehiclePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
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
