package validator

import (
	"testing"

	"whatyaneed_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Name  string          `json:"name" validate:"required"`
	Email string          `json:"email" validate:"required"`
	Role  models.UserRole `json:"role" validate:"required,is-creatable-role"`
}

type requestInput struct {
	Title   string               `json:"title" validate:"required"`
	Urgency *models.UrgencyLevel `json:"urgency_level" validate:"omitempty,is-urgency"`
}

type offerInput struct {
	RequestID *uint `json:"request_id" validate:"required,gt=0"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&registerInput{Role: models.UserRoleAdmin})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.Equal(t, "This field is required", vErr.Errors["email"])
	assert.Equal(t, "Invalid role", vErr.Errors["role"])
	assert.True(t, vErr.Has("role"))
}

func TestValidate_CreatableRoles(t *testing.T) {
	v := New()
	for _, role := range []models.UserRole{models.UserRoleRequester, models.UserRoleVolunteer} {
		assert.NoError(t, v.Validate(&registerInput{Name: "A", Email: "a@b.co", Role: role}))
	}
}

func TestValidate_Urgency(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&requestInput{Title: "t"}))

	high := models.UrgencyHigh
	assert.NoError(t, v.Validate(&requestInput{Title: "t", Urgency: &high}))

	bogus := models.UrgencyLevel("critical")
	err := v.Validate(&requestInput{Title: "t", Urgency: &bogus})
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "urgency_level")
}

func TestValidate_PositiveID(t *testing.T) {
	v := New()

	err := v.Validate(&offerInput{})
	require.Error(t, err)
	assert.Equal(t, "This field is required", err.(*ValidationError).Errors["request_id"])

	zero := uint(0)
	err = v.Validate(&offerInput{RequestID: &zero})
	require.Error(t, err)
	assert.Equal(t, "Must be greater than 0", err.(*ValidationError).Errors["request_id"])

	id := uint(3)
	assert.NoError(t, v.Validate(&offerInput{RequestID: &id}))
}
