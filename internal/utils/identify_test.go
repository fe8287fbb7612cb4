package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEmailOrPhone(t *testing.T) {
	cases := []struct {
		input   string
		want    InputType
		wantErr bool
	}{
		{"someone@example.com", InputEmail, false},
		{"first.last+tag@sub-domain.co", InputEmail, false},
		{"+998901234567", InputPhone, false},
		{"998911234567", InputPhone, false},
		{"0931234567", InputPhone, false},
		{" someone@example.com ", InputEmail, false},
		{"johndoe", "", true},          // usernames are not accepted here
		{"+15551234567", "", true},     // non-Uzbek number
		{"+99890123456", "", true},     // too short
		{"+9989012345678", "", true},   // too long
		{"+998121234567", "", true},    // unknown operator code
		{"someone@", "", true},
		{"@example.com", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ClassifyEmailOrPhone(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		assert.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestClassifyUserInput(t *testing.T) {
	cases := []struct {
		input   string
		want    InputType
		wantErr bool
	}{
		{"someone@example.com", InputEmail, false},
		{"+998901234567", InputPhone, false},
		{"johndoe", InputUsername, false},
		{"john.doe_99", InputUsername, false},
		{"instaclone-9f1c2d3a4b5e", InputUsername, false},
		{"has spaces", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ClassifyUserInput(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		assert.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestIsAlpha(t *testing.T) {
	assert.True(t, IsAlpha("John"))
	assert.True(t, IsAlpha("doe"))
	assert.False(t, IsAlpha(""))
	assert.False(t, IsAlpha("J0hn"))
	assert.False(t, IsAlpha("John Doe"))
	assert.False(t, IsAlpha("John-Doe"))
}
