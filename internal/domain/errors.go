package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrImageTooLarge = &AppError{
		Code:       "IMAGE_TOO_LARGE",
		Message:    "Image exceeds the maximum allowed size",
		StatusCode: 422,
	}

	ErrImageFetchFailed = &AppError{
		Code:       "IMAGE_FETCH_FAILED",
		Message:    "Could not download image from the provided URL",
		StatusCode: 422,
	}

	ErrDetectorUnavailable = &AppError{
		Code:       "DETECTOR_UNAVAILABLE",
		Message:    "Face detector backend is unavailable",
		StatusCode: 502,
	}
)
