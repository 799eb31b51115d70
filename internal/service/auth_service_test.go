package service

import (
	"context"
	"testing"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/config"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *stubUserRepo) {
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(users, cfg), users
}

func signupReq(role, email string) dto.SignupRequest {
	return dto.SignupRequest{
		FullName: "Test User",
		Email:    email,
		Password: "supersecret",
		Role:     role,
	}
}

func TestSignupSingletonManagerRule(t *testing.T) {
	auth, _ := newAuthFixture()

	_, err := auth.Signup(context.Background(), signupReq("Manager", "m1@example.com"))
	require.NoError(t, err)

	_, err = auth.Signup(context.Background(), signupReq("Manager", "m2@example.com"))
	require.ErrorIs(t, err, apierror.ErrValidation)
	assert.Contains(t, err.Error(), "Manager")
}

func TestSignupMultipleSalesAccountsAllowed(t *testing.T) {
	auth, _ := newAuthFixture()

	_, err := auth.Signup(context.Background(), signupReq("Sales", "s1@example.com"))
	require.NoError(t, err)
	_, err = auth.Signup(context.Background(), signupReq("Sales", "s2@example.com"))
	require.NoError(t, err)
}

func TestSignupSeatFreedByDeactivation(t *testing.T) {
	auth, _ := newAuthFixture()

	first, err := auth.Signup(context.Background(), signupReq("Finance", "f1@example.com"))
	require.NoError(t, err)

	require.NoError(t, auth.Deactivate(context.Background(), uuid.MustParse(first.ID)))

	_, err = auth.Signup(context.Background(), signupReq("Finance", "f2@example.com"))
	require.NoError(t, err)
}

func TestSignupDuplicateEmail(t *testing.T) {
	auth, _ := newAuthFixture()

	_, err := auth.Signup(context.Background(), signupReq("Sales", "dup@example.com"))
	require.NoError(t, err)
	_, err = auth.Signup(context.Background(), signupReq("Sales", "dup@example.com"))
	require.ErrorIs(t, err, apierror.ErrValidation)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	auth, _ := newAuthFixture()
	_, err := auth.Signup(context.Background(), signupReq("Superuser", "x@example.com"))
	require.ErrorIs(t, err, apierror.ErrValidation)
}

func TestLoginRoundTrip(t *testing.T) {
	auth, _ := newAuthFixture()
	_, err := auth.Signup(context.Background(), signupReq("Sales", "kofi@example.com"))
	require.NoError(t, err)

	resp, err := auth.Login(context.Background(), dto.LoginRequest{
		Email:    "kofi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "Sales", resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthFixture()
	_, err := auth.Signup(context.Background(), signupReq("Sales", "kofi@example.com"))
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), dto.LoginRequest{
		Email:    "kofi@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, apierror.ErrValidation)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	auth, _ := newAuthFixture()
	user, err := auth.Signup(context.Background(), signupReq("Sales", "kofi@example.com"))
	require.NoError(t, err)
	require.NoError(t, auth.Deactivate(context.Background(), uuid.MustParse(user.ID)))

	_, err = auth.Login(context.Background(), dto.LoginRequest{
		Email:    "kofi@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, apierror.ErrAuthorizationDenied)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	auth, _ := newAuthFixture()
	_, err := auth.Signup(context.Background(), signupReq("Sales", "kofi@example.com"))
	require.NoError(t, err)

	resp, err := auth.Login(context.Background(), dto.LoginRequest{
		Email:    "kofi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// An access token is not a refresh token.
	_, err = auth.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: resp.AccessToken})
	require.ErrorIs(t, err, apierror.ErrAuthorizationDenied)

	// The genuine refresh token works.
	refreshed, err := auth.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAssignRoleRespectsSingleton(t *testing.T) {
	auth, _ := newAuthFixture()
	_, err := auth.Signup(context.Background(), signupReq("Manager", "boss@example.com"))
	require.NoError(t, err)
	sales, err := auth.Signup(context.Background(), signupReq("Sales", "kofi@example.com"))
	require.NoError(t, err)

	_, err = auth.AssignRole(context.Background(), uuid.MustParse(sales.ID), dto.AssignRoleRequest{Role: "Manager"})
	require.ErrorIs(t, err, apierror.ErrValidation)

	// Moving into a non-singleton role is fine.
	updated, err := auth.AssignRole(context.Background(), uuid.MustParse(sales.ID), dto.AssignRoleRequest{Role: "Admin"})
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleAdmin), updated.Role)
}
