package services

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/repositories"
	"whatyaneed_backend/internal/services/dto"
	"whatyaneed_backend/internal/testhelpers"
	"whatyaneed_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(now *time.Time) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo: repositories.NewUserRepository(),
		now:      func() time.Time { return *now },
	}
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestUserService_SwitchRole(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "Ann", testhelpers.UniqueEmail("ann"), "secret1", models.UserRoleRequester)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newUserService(&now)

	switched, err := svc.SwitchRole(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleVolunteer, switched.Role)
	require.NotNil(t, switched.LastRoleSwitch)

	stored, err := svc.GetByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleVolunteer, stored.Role)
	require.NotNil(t, stored.LastRoleSwitch)
	assert.True(t, stored.LastRoleSwitch.Equal(now))
}

func TestUserService_SwitchRoleCooldown(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		hours   int
	}{
		{"just switched", 0, 24},
		{"half an hour ago", 30 * time.Minute, 24},
		{"one hour ago", time.Hour, 23},
		{"almost a day ago", 23*time.Hour + 59*time.Minute, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testhelpers.NewTestDB(t)
			user := testhelpers.CreateUser(t, db, "Ann", testhelpers.UniqueEmail("ann"), "secret1", models.UserRoleVolunteer)
			switchedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
			require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.ID).
				Update("last_role_switch", switchedAt).Error)

			now := switchedAt.Add(tt.elapsed)
			_, err := newUserService(&now).SwitchRole(db, user.ID)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.ErrorIs(t, err, apperrors.ErrRoleSwitchCooldown)
			assert.Equal(t, 400, appErr.Status)
			assert.Equal(t, map[string]int{"hoursRemaining": tt.hours}, appErr.Details)

			stored, err := newUserService(&now).GetByID(db, user.ID)
			require.NoError(t, err)
			assert.Equal(t, models.UserRoleVolunteer, stored.Role)
		})
	}
}

func TestUserService_SwitchRoleAfterCooldown(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "Ann", testhelpers.UniqueEmail("ann"), "secret1", models.UserRoleVolunteer)
	switchedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.ID).
		Update("last_role_switch", switchedAt).Error)

	now := switchedAt.Add(RoleSwitchCooldown)
	switched, err := newUserService(&now).SwitchRole(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleRequester, switched.Role)
}

func TestUserService_AdminCannotSwitch(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	admin := testhelpers.CreateUser(t, db, "Root", testhelpers.UniqueEmail("root"), "secret1", models.UserRoleAdmin)
	now := time.Now()

	_, err := newUserService(&now).SwitchRole(db, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrAdminRoleSwitch)
}

func TestUserService_UpdateProfile(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "Ann", testhelpers.UniqueEmail("ann"), "secret1", models.UserRoleRequester)
	now := time.Now()
	svc := newUserService(&now)

	location := "  Almaty "
	updated, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{Name: "Anna", Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.Name)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Almaty", *updated.Location)

	cleared, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{Name: "Anna"})
	require.NoError(t, err)
	assert.Nil(t, cleared.Location)
}

func TestUserService_UploadProfileImage(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "Ann", testhelpers.UniqueEmail("ann"), "secret1", models.UserRoleRequester)
	now := time.Now()
	svc := newUserService(&now)

	dataURL := pngDataURL(t)
	updated, err := svc.UploadProfileImage(db, user.ID, dataURL)
	require.NoError(t, err)
	require.NotNil(t, updated.ProfileImage)
	assert.Equal(t, dataURL, *updated.ProfileImage)

	_, err = svc.UploadProfileImage(db, user.ID, "data:text/plain;base64,aGVsbG8=")
	assert.ErrorIs(t, err, apperrors.ErrInvalidImageFormat)

	huge := "data:image/png;base64," + strings.Repeat("A", 3*1024*1024)
	_, err = svc.UploadProfileImage(db, user.ID, huge)
	assert.ErrorIs(t, err, apperrors.ErrImageTooLarge)

	stored, err := svc.GetByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, dataURL, *stored.ProfileImage, "rejected uploads keep the previous image")
}

func TestUserService_GetByIDMissing(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	now := time.Now()

	_, err := newUserService(&now).GetByID(db, 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
