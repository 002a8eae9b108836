package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ErrValidation wraps every record validation failure.
var ErrValidation = errors.New("validation failed")

var (
	subjectTag   = "subject"
	subjectText  = "{0} may only contain letters, digits, '-', '_' and '.'"
	subjectRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

	notBlankTag  = "notblank"
	notBlankText = "{0} cannot be blank"

	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

func instance() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		validate = validator.New()

		english := en.New()
		uni := ut.New(english, english)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// Use JSON tag names for errors instead of Go struct names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation(subjectTag, func(fl validator.FieldLevel) bool {
			return ValidSubjectID(fl.Field().String())
		})
		registerTranslation(subjectTag, subjectText)

		_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		registerTranslation(notBlankTag, notBlankText)
	})
	return validate, translator
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidSubjectID reports whether id can name a student's documents.
func ValidSubjectID(id string) bool {
	return id != "" && len(id) <= 128 && subjectRegex.MatchString(id)
}

// Validate checks a record's struct tags, returning an error that wraps
// ErrValidation and lists every failing field.
func Validate(v any) error {
	val, trans := instance()
	err := val.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
