package session_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"stay/config"
	"stay/infras/session"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.Session.Secret = secret
	cfg.Session.ExpireMinutes = 120

	return cfg
}

func TestSessions_IssueAndValidate(t *testing.T) {
	sessions := session.New(testConfig("test-secret"))

	token, err := sessions.Issue()
	assert.NoError(t, err)
	assert.NotEmpty(t, token.SessionID)
	assert.NotEmpty(t, token.Signed)
	assert.Positive(t, token.ExpiresIn)

	claims, err := sessions.Validate(token.Signed)
	assert.NoError(t, err)
	assert.Equal(t, token.SessionID, claims.SessionID)
}

func TestSessions_Validate_WrongSecret(t *testing.T) {
	issued, err := session.New(testConfig("one-secret")).Issue()
	assert.NoError(t, err)

	_, err = session.New(testConfig("another-secret")).Validate(issued.Signed)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestSessions_Validate_Garbage(t *testing.T) {
	sessions := session.New(testConfig("test-secret"))

	_, err := sessions.Validate("not-a-token")
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestSessions_Validate_MissingSessionClaim(t *testing.T) {
	cfg := testConfig("test-secret")

	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{})
	signed, err := bare.SignedString([]byte(cfg.Session.Secret))
	assert.NoError(t, err)

	_, err = session.New(cfg).Validate(signed)
	assert.ErrorIs(t, err, session.ErrInvalidClaim)
}
