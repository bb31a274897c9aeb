package todos

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xyz-asif/imagetodo/pkg/errors"
)

// Field names, in the order they appear on the form.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldEndDate     = "endDate"
	FieldImage       = "image"
)

var fieldOrder = []string{FieldTitle, FieldDescription, FieldEndDate, FieldImage}

const (
	MsgTitleRequired       = "Title is required"
	MsgDescriptionRequired = "Description is required"
	MsgEndDateRequired     = "End date is required"
	MsgImageRequired       = "Image is required"
	MsgImageType           = "Image must be an image file"
)

// DefaultMaxImageSize is the image upload limit when none is configured.
const DefaultMaxImageSize = int64(10 * 1024 * 1024)

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range fieldOrder {
		if msg, ok := fe[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports FieldErrors as apperrors.ErrValidation.
func (fe FieldErrors) Is(target error) bool {
	return target == apperrors.ErrValidation
}

// formSchema is what the form must satisfy. HasImage is true when a file was
// chosen or, while editing, the todo already carries an image.
type formSchema struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
	HasImage    bool   `json:"image" validate:"required"`
}

var messages = map[string]string{
	FieldTitle:       MsgTitleRequired,
	FieldDescription: MsgDescriptionRequired,
	FieldEndDate:     MsgEndDateRequired,
	FieldImage:       MsgImageRequired,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// ValidateForm checks every field of in and returns all failures at once.
// hasStoredImage lets an edit submit without choosing a new file.
func ValidateForm(in FormInput, hasStoredImage bool, maxImageSize int64) error {
	schema := formSchema{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		EndDate:     strings.TrimSpace(in.EndDate),
		HasImage:    in.Image != nil || hasStoredImage,
	}

	errs := FieldErrors{}
	if err := validate.Struct(schema); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		for _, fe := range verrs {
			errs[fe.Field()] = messages[fe.Field()]
		}
	}

	if _, failed := errs[FieldImage]; !failed && in.Image != nil && maxImageSize > 0 && in.Image.Size > maxImageSize {
		errs[FieldImage] = imageSizeMessage(maxImageSize)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func imageSizeMessage(limit int64) string {
	return fmt.Sprintf("Image must be at most %d MB", limit/(1024*1024))
}
