package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := engineerr.Configurationf("effect %q has no modifiers", "Poison").
		WithMeta("effect", "Poison")

	wrapped := engineerr.Wrap(base, "failed to create spec")
	require.NotNil(t, wrapped)

	assert.Equal(t, engineerr.CodeConfiguration, wrapped.Code)
	assert.True(t, engineerr.IsConfiguration(wrapped))
	assert.Equal(t, "Poison", engineerr.GetMeta(wrapped)["effect"])
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Equal(t, `failed to create spec: effect "Poison" has no modifiers`, wrapped.Error())
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := engineerr.Wrap(fmt.Errorf("boom"), "redis write")
	require.NotNil(t, wrapped)
	assert.Equal(t, engineerr.CodeUnknown, wrapped.Code)

	assert.Nil(t, engineerr.Wrap(nil, "nothing"))
	assert.Nil(t, engineerr.Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, engineerr.WrapWithCode(nil, engineerr.CodeInternal, "nothing"))
}

func TestWrapWithCode(t *testing.T) {
	wrapped := engineerr.WrapWithCode(fmt.Errorf("redis: nil"), engineerr.CodeNotFound, "snapshot missing")
	assert.True(t, engineerr.IsNotFound(wrapped))
	assert.Equal(t, engineerr.CodeNotFound, engineerr.GetCode(wrapped))
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code engineerr.Code
		want bool
	}{
		{
			name: "matching code",
			err:  engineerr.NotFoundf("attribute %s", "Health"),
			code: engineerr.CodeNotFound,
			want: true,
		},
		{
			name: "different code",
			err:  engineerr.InvalidArgument("nil snapshot"),
			code: engineerr.CodeNotFound,
			want: false,
		},
		{
			name: "wrapped with fmt",
			err:  fmt.Errorf("outer: %w", engineerr.Configuration("bad period")),
			code: engineerr.CodeConfiguration,
			want: true,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("plain"),
			code: engineerr.CodeUnknown,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engineerr.Is(tt.err, tt.code))
		})
	}
}
