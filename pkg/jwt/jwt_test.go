package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/invoicer/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse_ConPlan(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "business", "invoicer", 60)
	require.NoError(t, err)

	userID, plan, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "business", plan)
}

func TestParse_Errores(t *testing.T) {
	good, err := pkgjwt.Generate(secret, "user-1", "free", "invoicer", 60)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(secret, "user-1", "free", "invoicer", -1)
	require.NoError(t, err)
	noUser, err := pkgjwt.Generate(secret, "", "free", "invoicer", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro", good)
	assert.Error(t, err, "secret incorrecto")
	_, _, err = pkgjwt.Parse(secret, expired)
	assert.Error(t, err, "token expirado")
	_, _, err = pkgjwt.Parse(secret, noUser)
	assert.Error(t, err, "sin user_id")
	_, _, err = pkgjwt.Parse("", good)
	assert.Error(t, err, "secret vacío")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "free", "invoicer", 60)
	assert.Error(t, err)
}
