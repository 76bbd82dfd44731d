package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

func TestValidateInput_ReportaNombreJSON(t *testing.T) {
	err := usecase.ValidateInput(dto.UpdateProfileRequest{PhoneNumber: ptr(strings.Repeat("9", 16))})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "phone_number no cumple max=15")

	err = usecase.ValidateInput(dto.CreateRestaurantRequest{
		Name:    "A",
		Profile: &dto.UpdateProfileRequest{Website: ptr("sin-esquema")},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "website no cumple url")

	assert.NoError(t, usecase.ValidateInput(dto.UpdateUserRequest{FirstName: ptr(strings.Repeat("n", 150))}))
	assert.NoError(t, usecase.ValidateInput(dto.UpdateProfileRequest{PhoneNumber: ptr("")}))
}
