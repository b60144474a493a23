package services

import (
	"testing"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*repositories.MemoryStore, *AuthService) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return store, NewAuthService(store.Users(), "test-secret")
}

func TestRegisterUserHashesPassword(t *testing.T) {
	store, auth := newAuthFixture(t)

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "sup3rsecret"}
	require.NoError(t, auth.RegisterUser(user))

	stored, err := store.Users().GetByUsername("alice")
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("sup3rsecret")))
}

func TestRegisterUserDuplicates(t *testing.T) {
	_, auth := newAuthFixture(t)

	require.NoError(t, auth.RegisterUser(&models.User{
		Username: "alice", Email: "alice@example.com", Password: "sup3rsecret",
	}))

	var validationErr *models.ValidationError
	err := auth.RegisterUser(&models.User{
		Username: "alice", Email: "other@example.com", Password: "sup3rsecret",
	})
	assert.ErrorAs(t, err, &validationErr)

	err = auth.RegisterUser(&models.User{
		Username: "bob", Email: "alice@example.com", Password: "sup3rsecret",
	})
	assert.ErrorAs(t, err, &validationErr)
}

func TestLoginAndValidateToken(t *testing.T) {
	_, auth := newAuthFixture(t)

	require.NoError(t, auth.RegisterUser(&models.User{
		Username: "alice", Email: "alice@example.com", Password: "sup3rsecret", IsAdmin: true,
	}))

	token, err := auth.LoginUser("alice", "sup3rsecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, true, claims["is_admin"])
	assert.NotEmpty(t, claims["user_id"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, auth := newAuthFixture(t)

	require.NoError(t, auth.RegisterUser(&models.User{
		Username: "alice", Email: "alice@example.com", Password: "sup3rsecret",
	}))

	var validationErr *models.ValidationError
	_, err := auth.LoginUser("alice", "wrong")
	assert.ErrorAs(t, err, &validationErr)

	_, err = auth.LoginUser("nobody", "sup3rsecret")
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateTokenRejectsForgery(t *testing.T) {
	_, auth := newAuthFixture(t)
	require.NoError(t, auth.RegisterUser(&models.User{
		Username: "alice", Email: "alice@example.com", Password: "sup3rsecret",
	}))
	token, err := auth.LoginUser("alice", "sup3rsecret")
	require.NoError(t, err)

	// A token signed with a different secret must not validate.
	otherAuth := NewAuthService(repositories.NewMemoryStore().Users(), "other-secret")
	_, err = otherAuth.ValidateToken(token)
	assert.Error(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}
