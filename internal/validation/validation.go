// Package validation wraps go-playground/validator with JSON field names
// and the custom tags used by request and config structs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator"
	"go.uber.org/zap"

	"github.com/jonwraymond/pydepdocs/index"
)

// Validator validates structs and turns the first violation into a short,
// caller-facing error.
type Validator struct {
	validator                *validator.Validate
	logger                   *zap.Logger
	tagValidationDetailsOnce sync.Once
	tagValidationDetailsMap  map[string]tagValidationDetails
}

type tagValidationDetails struct {
	validatorFunc validator.Func
	err           error
}

// New creates a Validator. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) (*Validator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &Validator{validator: validator.New(), logger: logger}
	v.validator.RegisterTagNameFunc(useJSONFieldNames)
	if err := v.registerCustomValidatorsForTags(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks i's validate tags.
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	v.logger.Debug("validation failed", zap.Error(err))

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	first := validationErrs[0]
	if details, ok := v.getTagValidationDetails()[first.Tag()]; ok {
		return fmt.Errorf("field '%s': %w", first.Field(), details.err)
	}

	switch first.Tag() {
	case "required":
		return fmt.Errorf("missing required field '%s'", first.Field())
	case "min", "max", "gte", "lte":
		return fmt.Errorf("value of field '%s' is not in the expected range", first.Field())
	case "oneof":
		return fmt.Errorf("field '%s' must be one of: %s", first.Field(), first.Param())
	}
	return fmt.Errorf("field '%s' failed the '%s' check", first.Field(), first.Tag())
}

func (v *Validator) getTagValidationDetails() map[string]tagValidationDetails {
	v.tagValidationDetailsOnce.Do(func() {
		v.tagValidationDetailsMap = map[string]tagValidationDetails{
			"package":   {validatorFunc: isPackage, err: fmt.Errorf("must be one of: %s", strings.Join(index.PackageNames(), ", "))},
			"not_blank": {validatorFunc: isNotBlank, err: errors.New("must not be blank")},
		}
	})
	return v.tagValidationDetailsMap
}

func (v *Validator) registerCustomValidatorsForTags() error {
	for tag, details := range v.getTagValidationDetails() {
		if err := v.validator.RegisterValidation(tag, details.validatorFunc); err != nil {
			v.logger.Error("failed to register validator", zap.String("tag", tag), zap.Error(err))
			return fmt.Errorf("register validator %q: %w", tag, err)
		}
	}
	return nil
}

func useJSONFieldNames(fld reflect.StructField) string {
	for _, key := range []string{"json", "mapstructure"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// isPackage accepts the empty string (no filter) and the known packages.
func isPackage(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || index.Package(s).Valid()
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
