package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtoiOr(t *testing.T) {
	assert.Equal(t, 5, atoiOr("5", 1))
	assert.Equal(t, 1, atoiOr("", 1))
	assert.Equal(t, 1, atoiOr("x", 1))
	assert.Equal(t, -3, atoiOr("-3", 1))
}

func TestLeadPayloadValidation(t *testing.T) {
	ok := leadPayload{Name: "Ana Perez", Phone: "0812345678", Source: "referral", Status: "new"}
	require.NoError(t, validate.Struct(&ok))

	bad := leadPayload{Name: "", Phone: "0812345678", Email: "not-an-email", Source: "billboard", Status: "maybe"}
	err := validate.Struct(&bad)
	require.Error(t, err)

	fields := fieldErrors(err)
	// keyed by json names, for the frontend
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "source")
	assert.Contains(t, fields, "status")
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, first, last string
	}{
		{"Ana Perez", "Ana", "Perez"},
		{"Jose Luis Gomez", "Jose Luis", "Gomez"},
		{"Cher", "Cher", ""},
		{"  Ana Perez  ", "Ana", "Perez"},
	}
	for _, tt := range tests {
		first, last := splitName(tt.in)
		assert.Equal(t, tt.first, first)
		assert.Equal(t, tt.last, last)
	}
}
