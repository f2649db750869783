package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type clientInput struct {
	FirstName string `json:"nombre" validate:"required,max=100,personname"`
	Phone     string `json:"telefono" validate:"omitempty,phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Notes     string `json:"notas" validate:"max=250"`
}

func TestValidateOK(t *testing.T) {
	err := Validate(clientInput{FirstName: "María José", Phone: "+57 (300) 123-4567", Email: "maria@example.com"})
	assert.NoError(t, err)
}

func TestValidateFieldKeyedMessages(t *testing.T) {
	err := Validate(clientInput{FirstName: "R2D2", Phone: "12ab", Email: "nope"})

	fe, ok := httperr.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Solo se permiten letras y espacios."}, fe["nombre"])
	assert.Contains(t, fe, "telefono")
	assert.Contains(t, fe, "email")
}

func TestValidateRequired(t *testing.T) {
	fe, ok := httperr.AsFieldErrors(Validate(clientInput{}))
	require.True(t, ok)
	assert.Equal(t, []string{"Este campo es obligatorio."}, fe["nombre"])
}

func TestPhone(t *testing.T) {
	assert.True(t, IsPhone("3001234567"))
	assert.True(t, IsPhone("+57 300-123-4567"))
	assert.False(t, IsPhone("123456"))
	assert.False(t, IsPhone("+1234567890123456"))
	assert.Equal(t, "+573001234567", NormalizePhone(" +57 (300) 123-4567 "))
}
