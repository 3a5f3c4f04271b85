// Package cli holds the option structs for the command-line tools and
// validates them before any file work starts.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/buddyroo30/readadat/internal/errors"
)

// ReadOptions holds the flags for the readadat command.
type ReadOptions struct {
	AdatFile        string `json:"adat_file" validate:"required,file"`
	KeepOnlyPasses  bool   `json:"keepOnlyPasses"`
	KeepOnlySamples bool   `json:"keepOnlySamples"`
	Format          string `json:"format" validate:"required,oneof=text json"`
}

// ConvertOptions holds the flags for the adatconvert command.
type ConvertOptions struct {
	In              string `json:"in" validate:"required,pathexists"`
	Out             string `json:"out" validate:"required"`
	Format          string `json:"format" validate:"required,oneof=csv xlsx parquet"`
	KeepOnlyPasses  bool   `json:"keepOnlyPasses"`
	KeepOnlySamples bool   `json:"keepOnlySamples"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("pathexists", pathExists)

	// Use JSON tag names in error messages so they match the flag names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks an option struct against its validation tags. All
// violations are joined into a single validation error.
func Validate(opts interface{}) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return errors.NewAppError(errors.ErrTypeValidation, "invalid options", err)
	}

	messages := make([]string, len(fieldErrors))
	for i, fe := range fieldErrors {
		messages[i] = formatFieldError(fe)
	}
	return errors.NewValidationError(strings.Join(messages, "; "))
}

// formatFieldError formats a single field violation
func formatFieldError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "file":
		return fmt.Sprintf("%s must be an existing file", field)
	case "pathexists":
		return fmt.Sprintf("%s must be an existing file or directory", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Replace(err.Param(), " ", ", ", -1))
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// pathExists accepts any path that stats, file or directory.
func pathExists(fl validator.FieldLevel) bool {
	_, err := os.Stat(fl.Field().String())
	return err == nil
}
