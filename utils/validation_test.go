package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+15550001111", "15550001111", "+44 7700 900123", "(555) 000-1111"}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), "%q should be valid", phone)
	}

	invalid := []string{"", "abc", "+0123456", "+1555000111122334455"}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), "%q should be invalid", phone)
	}
}
