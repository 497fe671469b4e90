package engine

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/YutaGoto/imasparql-mcp-server/internal/sparql"
)

func newValidator(allowed []string) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("iri", func(fl validator.FieldLevel) bool {
		return sparql.CheckIRI(fl.Field().String(), allowed) == nil
	})
	return v
}

func (e *Engine) check(params any) error {
	err := e.validate.Struct(params)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return &ValidationError{Field: "params", Reason: err.Error()}
	}

	fe := fields[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: fe.Field()}
	case "iri":
		value, _ := fe.Value().(string)
		reason := "malformed iri"
		if cerr := sparql.CheckIRI(value, e.allowed); cerr != nil {
			reason = cerr.Error()
		}
		return &ValidationError{Field: fe.Field(), Reason: reason}
	default:
		return &ValidationError{Field: fe.Field(), Reason: "failed " + fe.Tag()}
	}
}
