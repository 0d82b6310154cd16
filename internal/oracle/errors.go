package oracle

import (
	"errors"
	"fmt"
)

var ErrGeneration = errors.New("case generation failed")

// ErrNoJSONFound and ErrMultipleJSONFound come from output extraction.
var (
	ErrNoJSONFound       = errors.New("no JSON object found in output")
	ErrMultipleJSONFound = errors.New("multiple JSON objects found in output")
)

// Stage names the step of the case pipeline that failed.
type Stage string

const (
	StageRequest  Stage = "request"
	StageExtract  Stage = "extract"
	StageSchema   Stage = "schema"
	StageDecode   Stage = "decode"
	StageValidate Stage = "validate"
)

// GenerationError reports a failed GenerateCase. It matches ErrGeneration
// with errors.Is and unwraps to the underlying cause.
type GenerationError struct {
	Stage    Stage
	Progress int
	Cause    error
	Output   string
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("generate case #%d: %s", e.Progress, e.Stage)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}
