package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecampus/backend/internal/pkg/apperrors"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("jdoe"))
	assert.NoError(t, ValidateUsername("j.doe_42"))

	assert.ErrorIs(t, ValidateUsername("ab"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateUsername("has space"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateUsername("bad!chars"), apperrors.ErrValidationFailed)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abcdefg1"))

	assert.ErrorIs(t, ValidatePassword("short1"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidatePassword("onlyletters"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidatePassword("12345678"), apperrors.ErrValidationFailed)
}
