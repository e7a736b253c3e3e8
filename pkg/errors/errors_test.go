package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CapturesCodeAndMessage(t *testing.T) {
	err := New(ErrCodeResolutionMiss, "no catalog entry")
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeResolutionMiss, err.Code)
	assert.Equal(t, "no catalog entry", err.Message)
	assert.Contains(t, err.Error(), "RES_001")
	assert.Contains(t, err.Error(), "no catalog entry")
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	base := New(ErrCodeClassificationFailed, "cannot classify")
	detailed := base.WithDetail("family=XQZ-900")

	assert.Empty(t, base.Detail)
	assert.Equal(t, "family=XQZ-900", detailed.Detail)
	assert.Contains(t, detailed.Error(), "family=XQZ-900")
}

func TestWithDetail_NilReceiver(t *testing.T) {
	var err *AppError
	assert.Nil(t, err.WithDetail("anything"))
}

func TestWrap_NilErrorReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeCatalogParseFailed, "ignored"))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("disk gone")
	err := Wrap(cause, ErrCodeCatalogParseFailed, "catalog load failed")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeCatalogParseFailed, err.Code)
}

func TestWrap_CodeUnknownPreservesInnerCode(t *testing.T) {
	inner := New(ErrCodeResolutionMiss, "pattern probe empty")
	wrapped := Wrap(fmt.Errorf("resolver: %w", inner), CodeUnknown, "adding context")
	assert.Equal(t, ErrCodeResolutionMiss, wrapped.Code)
}

func TestIsCode_TraversesChain(t *testing.T) {
	inner := New(ErrCodeIdentityContradiction, "horn text with speaker keywords")
	outer := Wrap(inner, CodeInternal, "classification step failed")

	assert.True(t, IsCode(outer, ErrCodeIdentityContradiction))
	assert.True(t, IsCode(outer, CodeInternal))
	assert.False(t, IsCode(outer, ErrCodeResolutionMiss))
	assert.False(t, IsCode(nil, CodeInternal))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("missing")))
	assert.True(t, IsNotFound(New(ErrCodeResolutionMiss, "exhausted fallbacks")))
	assert.False(t, IsNotFound(Internal("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeMappingPanic, GetCode(New(ErrCodeMappingPanic, "recovered")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeBadRequest, 400},
		{ErrCodeIdentityContradiction, 400},
		{ErrCodeResolutionMiss, 404},
		{ErrCodeCatalogNotLoaded, 503},
		{ErrCodeCircuitHardLimit, 500},
		{CodeOK, 200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code: %s", tt.code)
	}
}

func TestModule(t *testing.T) {
	assert.Equal(t, "CLS", ErrCodeClassificationFailed.Module())
	assert.Equal(t, "CIR", ErrCodeVoltageDropExceeded.Module())
	assert.Equal(t, "OK", CodeOK.Module())
}
