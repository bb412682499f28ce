package author

import "errors"

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrNotProfileOwner = errors.New("only the profile owner can update it")
)

// ToErrorCode converts an error to the API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrNotProfileOwner):
		return "FORBIDDEN"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to the HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrNotProfileOwner):
		return 403
	default:
		return 500
	}
}
