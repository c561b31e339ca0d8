package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Science Fiction", "science fiction"},
		{"  science   fiction  ", "science fiction"},
		{"Brontë", "bronte"},
		{"GABRIEL GARCÍA MÁRQUEZ", "gabriel garcia marquez"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.input), tt.input)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Sci-Fi", "sci-fi"))
	assert.True(t, Equal("Brontë", "Bronte"))
	assert.False(t, Equal("Romance", "Horror"))
}
