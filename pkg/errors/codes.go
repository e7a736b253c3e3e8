package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTimeout            ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeCacheError         ErrorCode = "COMMON_008"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_009"
	ErrCodeNotImplemented     ErrorCode = "COMMON_010"
)

// Aliases used throughout the engine so call sites read naturally.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")
)

// Configuration Error Codes
const (
	ErrCodeConfigInvalid  ErrorCode = "CFG_001"
	ErrCodeConfigNotFound ErrorCode = "CFG_002"
)

// Extraction Module Error Codes
const (
	ErrCodeExtractionFailed    ErrorCode = "EXT_001"
	ErrCodeParameterUnparsable ErrorCode = "EXT_002"
	ErrCodeNegativeElectrical  ErrorCode = "EXT_003"
)

// Classification Module Error Codes
const (
	ErrCodeClassificationFailed  ErrorCode = "CLS_001"
	ErrCodeIdentityContradiction ErrorCode = "CLS_002"
	ErrCodeIdentityUnknown       ErrorCode = "CLS_003"
	ErrCodeRuleTableInvalid      ErrorCode = "CLS_004"
)

// Catalog / Resolution Module Error Codes
const (
	ErrCodeCatalogNotLoaded     ErrorCode = "CAT_001"
	ErrCodeCatalogParseFailed   ErrorCode = "CAT_002"
	ErrCodeCatalogVersionEmpty  ErrorCode = "CAT_003"
	ErrCodeResolutionMiss       ErrorCode = "RES_001"
	ErrCodeSpecificationInvalid ErrorCode = "RES_002"
)

// Mapping Engine Error Codes
const (
	ErrCodeMappingFailed       ErrorCode = "MAP_001"
	ErrCodeMappingPanic        ErrorCode = "MAP_002"
	ErrCodeBatchPartialFailure ErrorCode = "MAP_003"
)

// Circuit / Capacity Module Error Codes
const (
	ErrCodeCircuitHardLimit      ErrorCode = "CIR_001"
	ErrCodeCircuitSpareLimit     ErrorCode = "CIR_002"
	ErrCodeVoltageDropExceeded   ErrorCode = "CIR_003"
	ErrCodeCircuitEmptyGauge     ErrorCode = "CIR_004"
	ErrCodePowerSupplyOverloaded ErrorCode = "CIR_005"
)

// Domain specific aliases.
const (
	CodeClassificationFailed = ErrCodeClassificationFailed
	CodeResolutionMiss       = ErrCodeResolutionMiss
	CodeCatalogNotLoaded     = ErrCodeCatalogNotLoaded
	CodeMappingPanic         = ErrCodeMappingPanic
)

// HTTPStatus maps an ErrorCode to the HTTP status code emitted by the API
// layer.  Codes without an explicit mapping fall back to 500.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case ErrCodeBadRequest, ErrCodeValidation,
		ErrCodeParameterUnparsable, ErrCodeIdentityContradiction,
		ErrCodeCircuitEmptyGauge:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeResolutionMiss:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeServiceUnavailable, ErrCodeCatalogNotLoaded:
		return http.StatusServiceUnavailable
	case ErrCodeNotImplemented:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// Module returns the module prefix of the code ("CLS", "RES", "CIR", ...)
// for use as a metric label.
func (c ErrorCode) Module() string {
	s := string(c)
	if i := strings.IndexByte(s, '_'); i > 0 {
		return s[:i]
	}
	return s
}
