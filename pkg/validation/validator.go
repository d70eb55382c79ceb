package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var plain = validator.New()

// IsEmail reports whether s is a bare address, without a display name or
// angle brackets, using the same rule as the "email" tag.
func IsEmail(s string) bool {
	return plain.Var(s, "required,email") == nil
}

// Init configures the validator behind gin's binding: errors use json tag
// names and the blog's field rules are registered as aliases.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	v.RegisterAlias("pwd", "min=8,max=20")
	v.RegisterAlias("personname", "min=2,max=20")
	v.RegisterAlias("posttext", "min=3")
	v.RegisterAlias("sortorder", "oneof=asc desc")
}

// ToDetails converts binding errors into a map[field]message for the
// response details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return map[string]string{ute.Field: "must be a " + ute.Type.String()}
	}
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}

	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return map[string]string{"query": "must be a number"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	kind := fe.Kind()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "eqfield":
		return "must match " + lowerFirst(param)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "pwd":
		return "must be between 8 and 20 characters"
	case "personname":
		return "must be between 2 and 20 characters"
	case "posttext":
		return "must be at least 3 characters"
	case "sortorder":
		return "must be asc or desc"
	case "len":
		if kind == reflect.String {
			return "must be exactly " + param + " characters"
		}
		return "must have exactly " + param + " items"
	case "min":
		switch kind {
		case reflect.String:
			return "must be at least " + param + " characters"
		case reflect.Slice, reflect.Map, reflect.Array:
			return "must have at least " + param + " items"
		default:
			return "must be at least " + param
		}
	case "max":
		switch kind {
		case reflect.String:
			return "must be at most " + param + " characters"
		case reflect.Slice, reflect.Map, reflect.Array:
			return "must have at most " + param + " items"
		default:
			return "must be at most " + param
		}
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be less than or equal to " + param
	}
	return "is invalid"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
