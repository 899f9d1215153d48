package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"todoweb/internal/core/model/response"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// report fields by their form name so errors line up with the inputs
	Validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]

		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	if err := Validator.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	if err := Validator.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	register := func(tag, text string, withParam bool) {
		Validator.RegisterTranslation(tag, Translator, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			if withParam {
				t, _ := ut.T(tag, getFieldName(fe.Field()), fe.Param())
				return t
			}

			t, _ := ut.T(tag, getFieldName(fe.Field()))
			return t
		})
	}

	register("required", "{0} is required", false)
	register("notblank", "{0} is required", false)
	register("max", "{0} must be at most {1} characters", true)
	register("maxbytes", "{0} must be at most {1} bytes", true)
}

// maxBytes bounds the encoded length of a string; bcrypt reads at most 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())

	if err != nil {
		panic(err)
	}

	return len(fl.Field().String()) <= limit
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"title":    "Title",
		"desc":     "Description",
		"username": "Username",
		"password": "Password",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return field
}

func Validate(data any) error {
	return Validator.Struct(data)
}

func FormatValidationErrors(err error) []response.ValidationError {
	var errs []response.ValidationError
	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			errs = append(errs, response.ValidationError{
				Field:   fieldError.Field(),
				Message: fieldError.Translate(Translator),
			})
		}
	}

	return errs
}
