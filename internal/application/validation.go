package application

import (
	"errors"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"opennoution/internal/domain"
)

// MaxTitleLength bounds page titles
const MaxTitleLength = 500

// Validate runs ozzo-validation rules against structPtr and reports the
// first failing field (in field name order) as a *ValidationError
func Validate(structPtr any, fields ...*validation.FieldRules) error {
	err := validation.ValidateStruct(structPtr, fields...)
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return &ValidationError{
		Field:   keys[0],
		Message: errs[keys[0]].Error(),
	}
}

// BlockTypeRule accepts only the supported block types
var BlockTypeRule = validation.By(func(value any) error {
	var t domain.BlockType
	switch v := value.(type) {
	case domain.BlockType:
		t = v
	case *domain.BlockType:
		if v == nil {
			return nil
		}
		t = *v
	default:
		return errors.New("must be a block type")
	}
	if !t.Valid() {
		return errors.New("unknown block type " + string(t))
	}
	return nil
})
