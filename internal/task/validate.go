package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError describes a record that failed struct validation.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s failed rule %s", e.Field, e.Rule)
}

// Validate checks a task record. Text is checked after trimming.
// The returned error joins one *ValidationError per failed field.
func Validate(t Task) error {
	t.Text = NormalizeText(t.Text)
	err := validate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &ValidationError{Field: strings.ToLower(fe.Field()), Rule: fe.Tag()})
	}
	return errors.Join(errs...)
}
