package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"game-review/internal/data/repository"
	"game-review/internal/dto/request"
	"game-review/pkg/apperror"
	"game-review/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (AuthService, *repositoryFixture) {
	repo := newTestRepository()
	mail := &fakeMailer{}
	codec := token.NewCodec("test-secret", time.Hour)
	service := NewAuthService(repo, codec, mail, zap.NewNop())
	return service, &repositoryFixture{repo: repo, mail: mail, codec: codec}
}

type repositoryFixture struct {
	repo  *repository.Repository
	mail  *fakeMailer
	codec *token.Codec
}

func TestRegisterCreatesInactiveUser(t *testing.T) {
	service, fx := newAuthFixture()
	ctx := context.Background()

	resp, err := service.Register(ctx, &request.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.False(t, resp.User.IsActive)
	assert.False(t, resp.User.IsAdmin)

	stored, err := fx.repo.User.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.IsActive)
	require.NotNil(t, stored.ValidationCode)
	assert.NotEmpty(t, *stored.ValidationCode)
	// Stored credential must not be the plaintext password
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterSendsValidationEmail(t *testing.T) {
	service, fx := newAuthFixture()
	ctx := context.Background()

	_, err := service.Register(ctx, &request.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	stored, err := fx.repo.User.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	// Delivery is async, so wait for the mailer to observe it
	assert.Eventually(t, func() bool {
		fx.mail.mu.Lock()
		defer fx.mail.mu.Unlock()
		return len(fx.mail.sent) == 1 &&
			fx.mail.sent[0].To == "alice@example.com" &&
			fx.mail.sent[0].Code == *stored.ValidationCode
	}, time.Second, 10*time.Millisecond)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture()
	ctx := context.Background()

	req := &request.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	_, err := service.Register(ctx, req)
	require.NoError(t, err)

	_, err = service.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestRegisterStoreDuplicateBackstop(t *testing.T) {
	service, fx := newAuthFixture()

	// Two racing registrations can both pass the pre-check; the one that
	// loses the insert race gets a Conflict, not a 500
	fx.repo.User.(*fakeUserRepo).createErr = fmt.Errorf("create user: %w", repository.ErrDuplicateEmail)

	_, err := service.Register(context.Background(), &request.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestLoginBeforeActivation(t *testing.T) {
	service, _ := newAuthFixture()
	ctx := context.Background()

	_, err := service.Register(ctx, &request.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, loginFailedMessage, appErr.Message)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	service, fx := newAuthFixture()
	ctx := context.Background()

	registerAndActivate(t, service, fx, "alice@example.com", "secret123")

	_, unknownErr := service.Login(ctx, &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	_, wrongPassErr := service.Login(ctx, &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.True(t, apperror.IsUnauthorized(unknownErr))
	assert.True(t, apperror.IsUnauthorized(wrongPassErr))
	// Neither response may reveal which check failed
	unknownApp, ok := apperror.FromError(unknownErr)
	require.True(t, ok)
	wrongPassApp, ok := apperror.FromError(wrongPassErr)
	require.True(t, ok)
	assert.Equal(t, unknownApp.Message, wrongPassApp.Message)
}

func TestValidateActivatesAndIssuesToken(t *testing.T) {
	service, fx := newAuthFixture()
	ctx := context.Background()

	_, err := service.Register(ctx, &request.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	stored, err := fx.repo.User.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	resp, err := service.Validate(ctx, &request.ValidateRequest{
		Email:          "alice@example.com",
		ValidationCode: *stored.ValidationCode,
	})
	require.NoError(t, err)
	assert.True(t, resp.User.IsActive)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := fx.codec.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice Smith", claims.FullName)
	assert.False(t, claims.IsAdmin)

	// Code is cleared once the account is active
	activated, err := fx.repo.User.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, activated.IsActive)
	assert.Nil(t, activated.ValidationCode)

	// And a normal login now works
	login, err := service.Login(ctx, &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestValidateWrongCode(t *testing.T) {
	service, fx := newAuthFixture()
	ctx := context.Background()

	_, err := service.Register(ctx, &request.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	_, err = service.Validate(ctx, &request.ValidateRequest{
		Email:          "alice@example.com",
		ValidationCode: "not-the-code",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsBadRequest(err))

	// Account is untouched by the failed attempt
	stored, err := fx.repo.User.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.NotNil(t, stored.ValidationCode)
}

func TestValidateUnknownEmail(t *testing.T) {
	service, _ := newAuthFixture()

	_, err := service.Validate(context.Background(), &request.ValidateRequest{
		Email:          "nobody@example.com",
		ValidationCode: "whatever",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestValidateAlreadyActive(t *testing.T) {
	service, fx := newAuthFixture()
	ctx := context.Background()

	code := registerAndActivate(t, service, fx, "alice@example.com", "secret123")

	_, err := service.Validate(ctx, &request.ValidateRequest{
		Email:          "alice@example.com",
		ValidationCode: code,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsBadRequest(err))
}

// registerAndActivate runs the full signup flow and returns the
// validation code that was used.
func registerAndActivate(t *testing.T, service AuthService, fx *repositoryFixture, email, password string) string {
	t.Helper()
	ctx := context.Background()

	_, err := service.Register(ctx, &request.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	stored, err := fx.repo.User.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, stored.ValidationCode)
	code := *stored.ValidationCode

	_, err = service.Validate(ctx, &request.ValidateRequest{
		Email:          email,
		ValidationCode: code,
	})
	require.NoError(t, err)

	return code
}
