package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// nicPattern accepts both Sri Lankan NIC formats: the old nine digits plus a
// V/X letter and the twelve-digit form issued since 2016.
var nicPattern = regexp.MustCompile(`^(\d{9}[VvXx]|\d{12})$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Report fields by their JSON names so messages match the request body.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = val.RegisterValidation("nic", func(fl validator.FieldLevel) bool {
		return NIC(fl.Field().String())
	})
	return val
}

// NIC reports whether s is a well-formed national identity card number.
func NIC(s string) bool {
	return nicPattern.MatchString(strings.TrimSpace(s))
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
