package response

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var EmptyRequestBodyResponse = Response{
	Status:  StatusError,
	Error:   "Empty Request Body",
	Message: "Request body is empty. Please provide necessary data.",
}

var BadRequestResponse = Response{
	Status:  StatusError,
	Error:   "Bad Request",
	Message: "The request could not be processed. Please check the data.",
}

var UnauthorizedResponse = Response{
	Status:  StatusError,
	Error:   "Unauthorized",
	Message: "Authentication is required to access this resource.",
}

var ResourceNotFoundResponse = Response{
	Status:  StatusError,
	Error:   "Resource Not Found",
	Message: "The requested resource was not found.",
}

var ServerErrorResponse = Response{
	Status:  StatusError,
	Error:   "Server Error",
	Message: "An internal server error occurred. Please try again later.",
}

type Response struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Details []any  `json:"details,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func SuccessResponse(msg string, data ...any) Response {
	resp := Response{
		Status:  StatusSuccess,
		Message: msg,
	}

	if len(data) > 0 {
		resp.Data = data[0]
	}

	return resp
}

func ErrorResponse(errLabel, msg string) Response {
	return Response{
		Status:  StatusError,
		Error:   errLabel,
		Message: msg,
	}
}

type validationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ValidationErrorResponse(err error) Response {
	resp := Response{
		Status:  StatusError,
		Error:   "Validation Error",
		Message: "The request contains invalid data.",
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, vErr := range validationErrs {
			resp.Details = append(resp.Details, validationDetail{
				Field:   vErr.Field(),
				Message: messageForTag(vErr),
			})
		}
	}

	return resp
}

func messageForTag(vErr validator.FieldError) string {
	switch vErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", vErr.Field())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters long.", vErr.Field(), vErr.Param())
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters long.", vErr.Field(), vErr.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", vErr.Field())
	}
}
