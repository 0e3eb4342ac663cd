package main

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"0", false},
		{"2", true},
		{"-1", true},
		{"0.0", false},
		{"NaN", false},
		{"nan", false},
		{"Inf", true},
		{"", false},
		{" ", false},
		{"true", true},
		{"TRUE", true},
		{"false", false},
		{"False", false},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseBool(tt.in))
		})
	}
}

func TestReadBool(t *testing.T) {
	app := newTestApplication(t)

	qs, err := url.ParseQuery("reading=1&finished=")
	require.NoError(t, err)

	reading := app.readBool(qs, "reading")
	require.NotNil(t, reading)
	assert.True(t, *reading)

	finished := app.readBool(qs, "finished")
	require.NotNil(t, finished)
	assert.False(t, *finished)

	assert.Nil(t, app.readBool(qs, "other"))
}

func TestReadString(t *testing.T) {
	app := newTestApplication(t)

	qs, err := url.ParseQuery("name=War&empty=")
	require.NoError(t, err)

	name, ok := app.readString(qs, "name")
	assert.True(t, ok)
	assert.Equal(t, "War", name)

	_, ok = app.readString(qs, "empty")
	assert.False(t, ok)

	_, ok = app.readString(qs, "missing")
	assert.False(t, ok)
}
