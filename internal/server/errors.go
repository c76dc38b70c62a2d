package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"bakkey/internal/crypto"
	"bakkey/internal/services/backupkey"
	"bakkey/internal/services/identity"
	"bakkey/internal/services/keyring"
	"bakkey/internal/store"
)

// GrpcCode is the gRPC status code carried in error bodies.
// Mapping follows https://github.com/grpc/grpc/blob/master/doc/http-grpc-status-mapping.md
type GrpcCode int

const (
	CodeOK                 GrpcCode = 0
	CodeCanceled           GrpcCode = 1
	CodeUnknown            GrpcCode = 2
	CodeInvalidArgument    GrpcCode = 3
	CodeDeadlineExceeded   GrpcCode = 4
	CodeNotFound           GrpcCode = 5
	CodeAlreadyExists      GrpcCode = 6
	CodePermissionDenied   GrpcCode = 7
	CodeResourceExhausted  GrpcCode = 8
	CodeFailedPrecondition GrpcCode = 9
	CodeUnimplemented      GrpcCode = 12
	CodeInternal           GrpcCode = 13
	CodeUnavailable        GrpcCode = 14
	CodeUnauthenticated    GrpcCode = 16
)

var codeNames = map[GrpcCode]string{
	CodeOK:                 "OK",
	CodeCanceled:           "Canceled",
	CodeUnknown:            "Unknown",
	CodeInvalidArgument:    "InvalidArgument",
	CodeDeadlineExceeded:   "DeadlineExceeded",
	CodeNotFound:           "NotFound",
	CodeAlreadyExists:      "AlreadyExists",
	CodePermissionDenied:   "PermissionDenied",
	CodeResourceExhausted:  "ResourceExhausted",
	CodeFailedPrecondition: "FailedPrecondition",
	CodeUnimplemented:      "Unimplemented",
	CodeInternal:           "Internal",
	CodeUnavailable:        "Unavailable",
	CodeUnauthenticated:    "Unauthenticated",
}

func (c GrpcCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "Unknown"
}

// APIError is the JSON body of every non-2xx response.
type APIError struct {
	Code       GrpcCode `json:"code"`
	Status     string   `json:"status"`
	Message    string   `json:"message"`
	HTTPStatus int      `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("code: %d, status: %s, message: %s", e.Code, e.Status, e.Message)
}

// Send writes e as the response.
func (e *APIError) Send(c *fiber.Ctx) error {
	return c.Status(e.HTTPStatus).JSON(e)
}

func newAPIError(httpStatus int, code GrpcCode, format string, args ...any) *APIError {
	return &APIError{
		Code:       code,
		Status:     code.String(),
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: httpStatus,
	}
}

// Errorf builds an APIError whose gRPC code is derived from httpStatus.
func Errorf(httpStatus int, format string, args ...any) *APIError {
	return newAPIError(httpStatus, httpToGRPCCode(httpStatus), format, args...)
}

// BadRequestf returns a 400 InvalidArgument error.
func BadRequestf(format string, args ...any) *APIError {
	return Errorf(http.StatusBadRequest, format, args...)
}

// FailedPreconditionf returns a 400 FailedPrecondition error.
func FailedPreconditionf(format string, args ...any) *APIError {
	return newAPIError(http.StatusBadRequest, CodeFailedPrecondition, format, args...)
}

func httpToGRPCCode(httpStatus int) GrpcCode {
	switch httpStatus {
	case http.StatusOK:
		return CodeOK
	case http.StatusBadRequest:
		return CodeInvalidArgument
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusForbidden:
		return CodePermissionDenied
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeAlreadyExists
	case http.StatusTooManyRequests:
		return CodeResourceExhausted
	case http.StatusNotImplemented:
		return CodeUnimplemented
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	case http.StatusGatewayTimeout:
		return CodeDeadlineExceeded
	case http.StatusPreconditionFailed:
		return CodeFailedPrecondition
	default:
		if httpStatus >= 400 && httpStatus < 500 {
			return CodeInvalidArgument
		}
		return CodeInternal
	}
}

// toAPIError maps service and fiber errors onto API errors. Anything
// unrecognised becomes a 500 whose message does not leak the cause.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Errorf(fe.Code, "%s", fe.Message)
	}

	switch {
	case errors.Is(err, crypto.ErrInvalidWordCount),
		errors.Is(err, crypto.ErrInvalidWord),
		errors.Is(err, crypto.ErrChecksumMismatch),
		errors.Is(err, crypto.ErrInvalidRecipient),
		errors.Is(err, keyring.ErrUnknownFormat),
		errors.Is(err, identity.ErrUndecryptablePhrase):
		return BadRequestf("%v", err)
	case errors.Is(err, backupkey.ErrRecipientMismatch),
		errors.Is(err, keyring.ErrAlreadyConfirmed):
		return FailedPreconditionf("%v", err)
	case errors.Is(err, keyring.ErrKeyNotFound):
		return Errorf(http.StatusNotFound, "%v", err)
	case errors.Is(err, keyring.ErrKeyExists):
		return Errorf(http.StatusConflict, "%v", err)
	case errors.Is(err, identity.ErrLocked),
		errors.Is(err, crypto.ErrRandomSourceUnavailable):
		return Errorf(http.StatusServiceUnavailable, "%v", err)
	case errors.Is(err, store.ErrWrongPassphrase):
		return Errorf(http.StatusUnauthorized, "%v", err)
	case errors.Is(err, context.DeadlineExceeded):
		return Errorf(http.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		return newAPIError(499, CodeCanceled, "request canceled")
	default:
		return Errorf(http.StatusInternalServerError, "internal server error")
	}
}
