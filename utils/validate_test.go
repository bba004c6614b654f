package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Goal  int    `json:"goal" validate:"min=1,max=50"`
}

func TestValidateStructOK(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "yuki@example.com", Goal: 5})
	assert.NoError(t, err)
}

func TestValidateStructReportsFields(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "not-an-email", Goal: 99})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "Goal")
}
