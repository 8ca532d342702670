package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/invoice-etl/pkg/jwt"
)

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "operador", pkgjwt.RoleETL, "invoice-etl", 5)
	require.NoError(t, err)

	sub, role, err := pkgjwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "operador", sub)
	assert.Equal(t, pkgjwt.RoleETL, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "operador", pkgjwt.RoleETL, "invoice-etl", 5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "operador", pkgjwt.RoleETL, "invoice-etl", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "operador", pkgjwt.RoleETL, "invoice-etl", 5)
	assert.Error(t, err)
}
