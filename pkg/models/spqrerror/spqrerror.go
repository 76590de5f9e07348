package spqrerror

import (
	"errors"
	"fmt"
)

const (
	SPQR_UNEXPECTED         = "SPQRU"
	SPQR_NO_DATASHARD       = "SPQRD"
	SPQR_ROUTING_ERROR      = "SPQRR"
	SPQR_CONNECTION_ERROR   = "SPQRO"
	SPQR_CONFIGURATION      = "SPQRN"
	SPQR_INVALID_STATE      = "SPQRI"
	SPQR_PARTIAL_EXECUTION  = "SPQRP"
	SPQR_EXECUTION_CANCELED = "SPQRQ"
)

var existingErrorCodeMap = map[string]string{
	SPQR_NO_DATASHARD:       "failed to match any datashard",
	SPQR_ROUTING_ERROR:      "Routing error",
	SPQR_CONNECTION_ERROR:   "Connection error",
	SPQR_CONFIGURATION:      "Configuration error",
	SPQR_INVALID_STATE:      "Invalid statement state",
	SPQR_PARTIAL_EXECUTION:  "Shard execution failed",
	SPQR_EXECUTION_CANCELED: "Execution canceled",
}

func GetMessageByCode(errorCode string) string {
	rep, ok := existingErrorCodeMap[errorCode]
	if ok {
		return rep
	}
	return "Unexpected error"
}

var _ error = &SpqrError{}

type SpqrError struct {
	Err error

	ErrorCode string
}

// New returns a coded error with errorMsg as description.
func New(errorCode string, errorMsg string) *SpqrError {
	return &SpqrError{
		Err:       errors.New(errorMsg),
		ErrorCode: errorCode,
	}
}

// Newf is New with fmt.Errorf formatting, so %w keeps the cause reachable.
func Newf(errorCode string, format string, a ...any) *SpqrError {
	return &SpqrError{
		Err:       fmt.Errorf(format, a...),
		ErrorCode: errorCode,
	}
}

func (er *SpqrError) Error() string {
	return fmt.Sprintf("Code: %s. Name: %s. Description: %s.",
		er.ErrorCode, GetMessageByCode(er.ErrorCode), er.Err)
}

func (er *SpqrError) Unwrap() error {
	return er.Err
}

// Is matches a bare target of the same code, as HasCode builds.
func (er *SpqrError) Is(target error) bool {
	t, ok := target.(*SpqrError)
	return ok && t.Err == nil && t.ErrorCode == er.ErrorCode
}

// HasCode reports whether any SpqrError in err's tree carries code,
// including errors joined under a multi-error Unwrap.
func HasCode(err error, code string) bool {
	return errors.Is(err, &SpqrError{ErrorCode: code})
}
