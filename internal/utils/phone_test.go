package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneNumber(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical form", input: "+212612345678", want: "+212612345678"},
		{name: "prefix 5", input: "+212522334455", want: "+212522334455"},
		{name: "prefix 7", input: "+212712345678", want: "+212712345678"},
		{name: "local form", input: "0612345678", want: "+212612345678"},
		{name: "without plus", input: "212612345678", want: "+212612345678"},
		{name: "with spaces", input: "+212 612 345 678", want: "+212612345678"},
		{name: "with dashes", input: "+212-612-345-678", want: "+212612345678"},
		{name: "invalid prefix 8", input: "+212812345678", wantErr: true},
		{name: "too short", input: "+21261234567", wantErr: true},
		{name: "too long", input: "+2126123456789", wantErr: true},
		{name: "foreign number", input: "+33612345678", wantErr: true},
		{name: "letters", input: "+212six12345678", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidatePhoneNumber(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
