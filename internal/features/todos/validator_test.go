package todos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/xyz-asif/imagetodo/pkg/errors"
)

func validInput() FormInput {
	return FormInput{Title: "Buy milk", Description: "2%", EndDate: "2024-01-01", Image: pngUpload("a.png")}
}

func TestValidateFormAccepts(t *testing.T) {
	require.NoError(t, ValidateForm(validInput(), false, DefaultMaxImageSize))
}

func TestValidateFormReportsEveryField(t *testing.T) {
	err := ValidateForm(FormInput{Title: "  ", EndDate: "not-a-date"}, false, DefaultMaxImageSize)
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrValidation))

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	require.Equal(t, FieldErrors{
		FieldTitle:       MsgTitleRequired,
		FieldDescription: MsgDescriptionRequired,
		FieldEndDate:     MsgEndDateRequired,
		FieldImage:       MsgImageRequired,
	}, fe)
	require.Equal(t,
		"validation failed: title: Title is required; description: Description is required; endDate: End date is required; image: Image is required",
		fe.Error())
}

func TestValidateFormEndDate(t *testing.T) {
	for _, date := range []string{"", "2024-13-01", "2024-02-30", "01/01/2024"} {
		in := validInput()
		in.EndDate = date
		err := ValidateForm(in, false, DefaultMaxImageSize)
		var fe FieldErrors
		require.True(t, errors.As(err, &fe), date)
		require.Equal(t, FieldErrors{FieldEndDate: MsgEndDateRequired}, fe, date)
	}
}

func TestValidateFormStoredImageSatisfiesEdit(t *testing.T) {
	in := validInput()
	in.Image = nil

	require.Error(t, ValidateForm(in, false, DefaultMaxImageSize))
	require.NoError(t, ValidateForm(in, true, DefaultMaxImageSize))
}

func TestValidateFormImageTooLarge(t *testing.T) {
	in := validInput()
	in.Image.Size = 3 * 1024 * 1024

	err := ValidateForm(in, false, 2*1024*1024)
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "Image must be at most 2 MB", fe[FieldImage])
}
