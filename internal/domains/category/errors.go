package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptySlug        = errors.New("unable to derive a valid slug from name")
	ErrDuplicateSlug    = errors.New("category with this slug already exists")
)

// ToErrorCode converts an error to the API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return "CATEGORY_NOT_FOUND"
	case errors.Is(err, ErrEmptySlug):
		return "EMPTY_SLUG"
	case errors.Is(err, ErrDuplicateSlug):
		return "DUPLICATE_SLUG"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to the HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return 404
	case errors.Is(err, ErrDuplicateSlug):
		return 409
	case errors.Is(err, ErrEmptySlug):
		return 400
	default:
		return 500
	}
}
