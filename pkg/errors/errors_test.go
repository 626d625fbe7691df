package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsErrorCode(t *testing.T) {
	inner := New(ErrUnsupportedPlatform, "zld is only available on macOS")
	outer := Wrapf(inner, ErrToolInstall, "failed to install %s", "zld")

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{
			name: "direct code matches",
			err:  inner,
			code: ErrUnsupportedPlatform,
			want: true,
		},
		{
			name: "outer code matches on wrapped error",
			err:  outer,
			code: ErrToolInstall,
			want: true,
		},
		{
			name: "inner code still visible through wrapping",
			err:  outer,
			code: ErrUnsupportedPlatform,
			want: true,
		},
		{
			name: "absent code does not match",
			err:  outer,
			code: ErrConfigLoad,
			want: false,
		},
		{
			name: "nil error never matches",
			err:  nil,
			code: ErrToolInstall,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestIsErrorCodeThroughMulti(t *testing.T) {
	multi := &Multi{}
	multi.Append(New(ErrConfigValid, "jobs out of range"))
	multi.Append(New(ErrConfigValid, "timeout too small"))

	err := multi.ErrOrNil()
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ErrConfigValid))
	assert.False(t, IsErrorCode(err, ErrToolInstall))
}

func TestGetErrorCodeReturnsOutermost(t *testing.T) {
	inner := New(ErrUnsupportedPlatform, "no package manager detected")
	outer := Wrap(inner, ErrToolInstall, "failed to install mold")

	assert.Equal(t, ErrToolInstall, GetErrorCode(outer))
	assert.Equal(t, ErrUnsupportedPlatform, GetErrorCode(inner))
	assert.Equal(t, ErrUnknown, GetErrorCode(nil))
}
