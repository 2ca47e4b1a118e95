package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound is returned when a product id does not resolve.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category id does not resolve.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrOrderNotFound is returned when an order id does not resolve.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCategoryNameTaken is returned when creating or renaming a category
	// to a name already in use.
	ErrCategoryNameTaken = errors.New("category name already in use")
	// ErrCartEmpty is returned when placing an order from an empty cart.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrInvalidOrderStatus is returned for a status outside the known set.
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	// Unique key violations are client errors even when a service did not
	// translate them to a more specific sentinel.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return NewHTTPError(http.StatusBadRequest, "duplicate value for a unique field", "DUPLICATE_KEY")
	}

	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrProductNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case ErrCategoryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case ErrOrderNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case ErrCategoryNameTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CATEGORY_NAME_TAKEN")
	case ErrCartEmpty:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CART_EMPTY")
	case ErrInvalidOrderStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ORDER_STATUS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
