// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/MKhiriev/notes-keeper/models"
)

// Field name constants restrict validation of a [models.NoteKey] to a subset
// of its fields.
const (
	// FieldNoteID targets the note identifier.
	FieldNoteID = "note_id"

	// FieldUserID targets the owner identifier.
	FieldUserID = "user_id"
)

// NoteValidator implements [Validator] for the note models on top of
// go-playground/validator. Struct rules live in the models' validate tags;
// messages are keyed by the "form" (or "json") name of the field.
type NoteValidator struct {
	validate *validator.Validate
}

// NewNoteValidator constructs a NoteValidator and returns it as a [Validator].
func NewNoteValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("notblank", nonstandard.NotBlank)

	return &NoteValidator{validate: v}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted.
//
// Supported types:
//   - models.NoteForm, models.NewNote, models.NoteUpdate, models.ListNotesRequest:
//     struct rules; fields, when given, are Go field names passed to
//     StructPartial. Failures are returned as [FieldErrors].
//   - models.NoteKey: identifier checks scoped by FieldNoteID / FieldUserID.
func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NoteForm:
		return v.validateStruct(value, fields...)
	case *models.NoteForm:
		return v.validateStruct(*value, fields...)
	case models.NewNote:
		return v.validateStruct(value, fields...)
	case *models.NewNote:
		return v.validateStruct(*value, fields...)
	case models.NoteUpdate:
		return v.validateNoteUpdate(value, fields...)
	case *models.NoteUpdate:
		return v.validateNoteUpdate(*value, fields...)
	case models.ListNotesRequest:
		return v.validateStruct(value, fields...)
	case *models.ListNotesRequest:
		return v.validateStruct(*value, fields...)
	case models.NoteKey:
		return v.validateNoteKey(value, fields...)
	case *models.NoteKey:
		return v.validateNoteKey(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *NoteValidator) validateNoteUpdate(update models.NoteUpdate, fields ...string) error {
	if update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	return v.validateStruct(update, fields...)
}

func (v *NoteValidator) validateNoteKey(key models.NoteKey, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNoteID, FieldUserID}
	}

	for _, f := range fields {
		switch f {
		case FieldNoteID:
			if key.ID <= 0 {
				return ErrInvalidNoteID
			}
		case FieldUserID:
			if key.UserID <= 0 {
				return ErrInvalidUserID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *NoteValidator) validateStruct(obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartial(obj, fields...)
	} else {
		err = v.validate.Struct(obj)
	}
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	fieldErrs := make(FieldErrors, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs.Add(fe.Field(), msgForTag(fe))
	}

	return fieldErrs
}

// msgForTag returns a human-readable error message for a validation tag.
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
