package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, userID, "user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, j.Validate(ctx, token))

	claims, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute)) // already expired

	ctx := context.Background()
	token, err := j.Generate(ctx, uuid.New(), "user@example.com")
	assert.NoError(t, err)

	assert.Error(t, j.Validate(ctx, token))

	claims, err := j.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWT_TamperedToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))

	ctx := context.Background()
	token, err := j.Generate(ctx, uuid.New(), "user@example.com")
	assert.NoError(t, err)

	// Flipping any byte must invalidate the signature.
	for _, i := range []int{0, len(token) / 2, len(token) - 1} {
		mutated := []byte(token)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		assert.Error(t, j.Validate(ctx, string(mutated)), "mutated byte %d", i)
	}
}

func TestJWT_WrongSigningKey(t *testing.T) {
	issuer := New(WithSecretKey("issuer-secret"), WithExpiration(time.Minute))
	verifier := New(WithSecretKey("other-secret"), WithExpiration(time.Minute))

	ctx := context.Background()
	token, err := issuer.Generate(ctx, uuid.New(), "user@example.com")
	assert.NoError(t, err)

	_, err = verifier.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_GetClaimsGarbageInput(t *testing.T) {
	j := New(WithSecretKey("test-secret"))

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := j.GetClaims(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New(WithSecretKey("test-secret"))
	ctx := context.Background()

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

		token, err := j.GetTokenFromRequest(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")

		token, err := j.GetTokenFromRequest(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, "header-token", token)
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")

		token, err := j.GetTokenFromRequest(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("missing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := j.GetTokenFromRequest(ctx, r)
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Token abc")

		_, err := j.GetTokenFromRequest(ctx, r)
		assert.ErrorIs(t, err, ErrNoToken)
	})
}
