package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

type Response struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ReservationID string `json:"reservationId,omitempty"`
}

func OK(msg string, reservationID string) Response {
	return Response{
		Success:       true,
		Message:       msg,
		ReservationID: reservationID,
	}
}

func Error(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s is a required field", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s is not valid", err.Field()))
		}
	}

	return Response{
		Success: false,
		Message: strings.Join(errMsgs, ", "),
	}
}
