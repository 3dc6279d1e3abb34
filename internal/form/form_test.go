package form_test

import (
	"testing"

	"github.com/optimistlabs/storefront/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileForm(initial map[string]string) *form.Form {
	return form.New(form.ProfileSchema(form.DefaultLocale()), initial)
}

func Test_Form_StartsPristine(t *testing.T) {
	f := profileForm(nil)

	assert.Equal(t, form.StatePristine, f.State())
	assert.False(t, f.Touched(form.FieldEmail))

	_, show := f.DisplayError(form.FieldEmail)
	assert.False(t, show, "untouched fields never show errors")
}

func Test_Form_SeedIgnoresUnknownKeys(t *testing.T) {
	f := profileForm(map[string]string{
		form.FieldFirstName: "Priya",
		"acceptsMarketing":  "true",
	})

	assert.Equal(t, "Priya", f.Value(form.FieldFirstName))
	assert.Equal(t, "", f.Value("acceptsMarketing"))
}

func Test_Form_SetValueDoesNotValidate(t *testing.T) {
	f := profileForm(nil)

	require.NoError(t, f.SetValue(form.FieldEmail, "not-an-email"))

	_, show := f.DisplayError(form.FieldEmail)
	assert.False(t, show, "typing alone surfaces nothing")
	assert.Equal(t, form.StatePristine, f.State(), "typing does not leave pristine")
}

func Test_Form_SetValueRejectsUnknownField(t *testing.T) {
	f := profileForm(nil)

	err := f.SetValue("nickname", "P")
	assert.ErrorIs(t, err, form.ErrUnknownField)
}

func Test_Form_MarkTouchedGatesDisplay(t *testing.T) {
	f := profileForm(nil)
	require.NoError(t, f.SetValue(form.FieldEmail, "not-an-email"))

	// Both email and firstName are invalid; only the touched one surfaces.
	require.NoError(t, f.MarkTouched(form.FieldEmail))

	msg, show := f.DisplayError(form.FieldEmail)
	assert.True(t, show)
	assert.Equal(t, "Please enter a valid email address", msg)

	_, show = f.DisplayError(form.FieldFirstName)
	assert.False(t, show, "firstName is invalid but untouched")

	assert.Equal(t, form.StateEditing, f.State())
}

func Test_Form_MarkTouchedIsIdempotent(t *testing.T) {
	f := profileForm(nil)

	require.NoError(t, f.MarkTouched(form.FieldEmail))
	require.NoError(t, f.MarkTouched(form.FieldEmail))

	msg, show := f.DisplayError(form.FieldEmail)
	assert.True(t, show)
	assert.Equal(t, "Email is required", msg)
}

func Test_Form_ErrorClearsOnRevalidation(t *testing.T) {
	f := profileForm(nil)
	require.NoError(t, f.SetValue(form.FieldEmail, "bad"))
	require.NoError(t, f.MarkTouched(form.FieldEmail))

	_, show := f.DisplayError(form.FieldEmail)
	require.True(t, show)

	// Correcting the value and blurring again clears the stale error.
	require.NoError(t, f.SetValue(form.FieldEmail, "user@example.com"))
	require.NoError(t, f.MarkTouched(form.FieldEmail))

	_, show = f.DisplayError(form.FieldEmail)
	assert.False(t, show)
}

func Test_Form_BlurRecomputesSiblingFields(t *testing.T) {
	f := profileForm(nil)
	require.NoError(t, f.SetValue(form.FieldFirstName, "A"))
	require.NoError(t, f.MarkTouched(form.FieldFirstName))

	msg, show := f.DisplayError(form.FieldFirstName)
	require.True(t, show)
	require.Equal(t, "First name must be at least 2 characters", msg)

	// Fixing firstName but blurring a different field still refreshes
	// firstName's error, because every pass rebuilds the whole map.
	require.NoError(t, f.SetValue(form.FieldFirstName, "Priya"))
	require.NoError(t, f.MarkTouched(form.FieldLastName))

	_, show = f.DisplayError(form.FieldFirstName)
	assert.False(t, show)
}

func Test_Form_AttemptSubmitBlockedMarksAllTouched(t *testing.T) {
	f := profileForm(map[string]string{form.FieldFirstName: "Priya"})

	out, err := f.AttemptSubmit()
	require.NoError(t, err)

	assert.False(t, out.Proceed)
	assert.Contains(t, out.Errors, form.FieldLastName)
	assert.Contains(t, out.Errors, form.FieldEmail)
	assert.NotContains(t, out.Errors, form.FieldFirstName)
	assert.NotContains(t, out.Errors, form.FieldPhone, "empty optional phone is valid")

	// Every field is now touched, so all errors are displayable.
	msg, show := f.DisplayError(form.FieldLastName)
	assert.True(t, show)
	assert.Equal(t, "Last name is required", msg)

	assert.Equal(t, form.StateEditing, f.State(), "a blocked submit stays editable")
}

func Test_Form_AttemptSubmitProceedEntersSubmitting(t *testing.T) {
	f := profileForm(map[string]string{
		form.FieldFirstName: "Priya",
		form.FieldLastName:  "Sharma",
		form.FieldEmail:     "priya@example.com",
		form.FieldPhone:     "98765 43210",
	})

	out, err := f.AttemptSubmit()
	require.NoError(t, err)
	require.True(t, out.Proceed)

	assert.Equal(t, form.StateSubmitting, f.State())
	assert.Equal(t, "+919876543210", out.Payload.Get(form.FieldPhone).String)
}

func Test_Form_SubmittingRejectsMutation(t *testing.T) {
	f := profileForm(map[string]string{
		form.FieldFirstName: "Priya",
		form.FieldLastName:  "Sharma",
		form.FieldEmail:     "priya@example.com",
	})

	out, err := f.AttemptSubmit()
	require.NoError(t, err)
	require.True(t, out.Proceed)

	assert.ErrorIs(t, f.SetValue(form.FieldFirstName, "X"), form.ErrSubmitting)
	assert.ErrorIs(t, f.MarkTouched(form.FieldFirstName), form.ErrSubmitting)
	assert.ErrorIs(t, f.Reset(nil), form.ErrSubmitting)

	_, err = f.AttemptSubmit()
	assert.ErrorIs(t, err, form.ErrSubmitting, "double submit is rejected")
}

func Test_Form_FinishSuccessCloses(t *testing.T) {
	f := profileForm(map[string]string{
		form.FieldFirstName: "Priya",
		form.FieldLastName:  "Sharma",
		form.FieldEmail:     "priya@example.com",
	})

	_, err := f.AttemptSubmit()
	require.NoError(t, err)
	require.NoError(t, f.Finish(true))

	assert.Equal(t, form.StateClosed, f.State())
	assert.ErrorIs(t, f.SetValue(form.FieldFirstName, "X"), form.ErrClosed)
}

func Test_Form_FinishFailureReturnsToEditing(t *testing.T) {
	f := profileForm(map[string]string{
		form.FieldFirstName: "Priya",
		form.FieldLastName:  "Sharma",
		form.FieldEmail:     "priya@example.com",
	})

	_, err := f.AttemptSubmit()
	require.NoError(t, err)
	require.NoError(t, f.Finish(false))

	assert.Equal(t, form.StateEditing, f.State())
	assert.NoError(t, f.SetValue(form.FieldEmail, "priya.s@example.com"), "values editable again for retry")

	out, err := f.AttemptSubmit()
	require.NoError(t, err)
	assert.True(t, out.Proceed, "retry after failure is allowed")
}

func Test_Form_FinishOutsideSubmittingErrors(t *testing.T) {
	f := profileForm(nil)

	err := f.Finish(true)
	assert.Error(t, err)
}

func Test_Form_ResetReturnsToPristine(t *testing.T) {
	f := profileForm(nil)
	require.NoError(t, f.SetValue(form.FieldEmail, "bad"))
	require.NoError(t, f.MarkTouched(form.FieldEmail))

	require.NoError(t, f.Reset(map[string]string{form.FieldFirstName: "Ravi"}))

	assert.Equal(t, form.StatePristine, f.State())
	assert.Equal(t, "Ravi", f.Value(form.FieldFirstName))
	assert.Equal(t, "", f.Value(form.FieldEmail))
	assert.False(t, f.Touched(form.FieldEmail))

	_, show := f.DisplayError(form.FieldEmail)
	assert.False(t, show)
}

func Test_Form_AddressSchemaSubmit(t *testing.T) {
	loc := form.DefaultLocale()
	f := form.New(form.AddressSchema(loc), form.AddressDefaults(loc, "Priya", "Sharma", ""))

	out, err := f.AttemptSubmit()
	require.NoError(t, err)
	require.False(t, out.Proceed)
	assert.Equal(t, map[string]string{
		form.FieldAddress1: "Address line 1 is required",
		form.FieldCity:     "City is required",
		form.FieldProvince: "State is required",
		form.FieldZip:      "Pincode is required",
	}, out.Errors)

	require.NoError(t, f.SetValue(form.FieldAddress1, "14 MG Road"))
	require.NoError(t, f.SetValue(form.FieldCity, "Bengaluru"))
	require.NoError(t, f.SetValue(form.FieldProvince, "Karnataka"))
	require.NoError(t, f.SetValue(form.FieldZip, "560001"))

	out, err = f.AttemptSubmit()
	require.NoError(t, err)
	require.True(t, out.Proceed)

	assert.Equal(t, "India", out.Payload.Get(form.FieldCountry).String, "country seeded from locale")
	assert.False(t, out.Payload.Get(form.FieldCompany).Set, "empty optional company is unset")
	assert.False(t, out.Payload.Get(form.FieldPhone).Set, "empty optional phone is unset")
}
