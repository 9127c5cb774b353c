package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried on wrapped command errors so transports and logs can
// identify the failure stage without parsing messages.
const (
	validationFailedCode = "ARTICLES_VALIDATION_FAILED"
	commandCanceledCode  = "ARTICLES_COMMAND_CANCELED"
	commandTimeoutCode   = "ARTICLES_COMMAND_TIMEOUT"
	contextErrorCode     = "ARTICLES_CONTEXT_ERROR"
	executionFailedCode  = "ARTICLES_COMMAND_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "article command validation failed").
		WithTextCode(validationFailedCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	msg, code := "article command context error", contextErrorCode
	switch {
	case errors.Is(err, context.Canceled):
		msg, code = "article command cancelled", commandCanceledCode
	case errors.Is(err, context.DeadlineExceeded):
		msg, code = "article command deadline exceeded", commandTimeoutCode
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "article command execution failed").
		WithTextCode(executionFailedCode)
}
