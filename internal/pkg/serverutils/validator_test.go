package serverutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email  string `validate:"required,email"`
	Status string `validate:"omitempty,oneof=open resolved"`
}

func TestValidateRequestValid(t *testing.T) {
	err := ValidateRequest(&sampleRequest{Email: "victor@board.example"})
	assert.NoError(t, err)
}

func TestValidateRequestCollectsFieldErrors(t *testing.T) {
	err := ValidateRequest(&sampleRequest{Email: "not-an-email", Status: "pending"})
	assert.Error(t, err)

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve), "expected a *ValidationError")
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, ve.Error(), "Email failed on 'email'")
	assert.Contains(t, ve.Error(), "Status failed on 'oneof'")
}

func TestValidateRequestRequired(t *testing.T) {
	err := ValidateRequest(&sampleRequest{})
	assert.Error(t, err)

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Email failed on 'required'"}, ve.Fields)
}
