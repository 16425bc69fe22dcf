package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/personeltakip/backend/internal/repository"
)

var (
	ErrPhoneTaken         = errors.New("Phone number already registered")
	ErrInvalidCredentials = errors.New("Invalid phone number or password")
	ErrUserNotFound       = errors.New("User not found")
	ErrNoPendingCode      = errors.New("No pending verification code")
	ErrCodeExpired        = errors.New("Verification code expired")
	ErrIncorrectCode      = errors.New("Incorrect verification code")
	ErrCodeDelivery       = errors.New("Verification code could not be delivered")
	ErrTooManyAttempts    = errors.New("Too many attempts, try again later")
	ErrUnauthenticated    = errors.New("Not authenticated")
	ErrForbidden          = errors.New("Forbidden")

	ErrInvalidDateRange   = errors.New("End date must not be before start date")
	ErrNoWorkingDays      = errors.New("Leave range contains no working days")
	ErrInsufficientLeave  = errors.New("Insufficient annual leave balance")
	ErrLeaveNotPending    = errors.New("Leave request is no longer pending")
	ErrAlreadyCheckedIn   = errors.New("Employee already checked in today")
	ErrNotCheckedIn       = errors.New("Employee has not checked in today")
	ErrAlreadyCheckedOut  = errors.New("Employee already checked out today")
	ErrCheckOutBeforeIn   = errors.New("Check-out time is before check-in time")
	ErrEmployeeInactive   = errors.New("Employee is not active")
	ErrInvalidQRCode      = errors.New("Invalid or expired QR code")
	ErrQRUnavailable      = errors.New("QR check-in is unavailable")
	ErrInvalidShiftTime   = errors.New("Shift times must use HH:MM")
	ErrShiftBranch        = errors.New("Shift belongs to another branch")
	ErrBranchRequired     = errors.New("Branch is required")
	ErrInvalidDate        = errors.New("Dates must use YYYY-MM-DD")
	ErrInvalidLeaveStatus = errors.New("Status must be approved or rejected")
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrUnauthenticated, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrUserNotFound, http.StatusNotFound},
	{ErrTooManyAttempts, http.StatusTooManyRequests},
	{ErrCodeDelivery, http.StatusBadGateway},
	{ErrQRUnavailable, http.StatusServiceUnavailable},
	{ErrPhoneTaken, http.StatusBadRequest},
	{ErrNoPendingCode, http.StatusBadRequest},
	{ErrCodeExpired, http.StatusBadRequest},
	{ErrIncorrectCode, http.StatusBadRequest},
	{ErrInvalidDateRange, http.StatusBadRequest},
	{ErrNoWorkingDays, http.StatusBadRequest},
	{ErrInsufficientLeave, http.StatusBadRequest},
	{ErrLeaveNotPending, http.StatusBadRequest},
	{ErrAlreadyCheckedIn, http.StatusBadRequest},
	{ErrNotCheckedIn, http.StatusBadRequest},
	{ErrAlreadyCheckedOut, http.StatusBadRequest},
	{ErrCheckOutBeforeIn, http.StatusBadRequest},
	{ErrEmployeeInactive, http.StatusBadRequest},
	{ErrInvalidQRCode, http.StatusBadRequest},
	{ErrInvalidShiftTime, http.StatusBadRequest},
	{ErrShiftBranch, http.StatusBadRequest},
	{ErrBranchRequired, http.StatusBadRequest},
	{ErrInvalidDate, http.StatusBadRequest},
	{ErrInvalidLeaveStatus, http.StatusBadRequest},
}

// StatusFor maps an error to the HTTP status and client message. Unknown
// errors become a 500 with a generic message.
func StatusFor(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusBadRequest, "Record already exists"
	case errors.Is(err, repository.ErrReference):
		return http.StatusBadRequest, "Referenced record does not exist or is still in use"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusBadRequest, "Record state conflict"
	}
	return http.StatusInternalServerError, "An Internal Error Occurred"
}

// WriteError sends err as a JSON error response, logging unexpected errors.
func WriteError(w http.ResponseWriter, err error) {
	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[API] Unexpected error: %v", err)
	}
	SendErrorResponse(w, message, status, nil)
}
