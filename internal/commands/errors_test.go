package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reglet-dev/rvext/internal/abi"
)

func TestErrorResponse_JSON(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  NewValidationError("needs a position"),
			want: `{"error":"VALIDATION_ERROR","message":"needs a position","code":400}`,
		},
		{
			name: "non-ascii message is escaped",
			err:  errors.New("open C:/Users/José/profile: access denied"),
			want: `{"error":"INTERNAL_ERROR","message":"open C:/Users/Jos\u00e9/profile: access denied","code":500}`,
		},
		{
			name: "NUL in message is escaped",
			err:  NewPanicError("bad\x00byte"),
			want: `{"error":"INTERNAL_ERROR","message":"panic: bad\u0000byte","code":500}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsErrorResponse(tt.err).JSON()
			assert.NoError(t, abi.ValidateText(got), "error documents must be writable to the Host")
			assert.Equal(t, tt.want, got)
		})
	}
}
