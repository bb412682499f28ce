package post

import "errors"

var (
	// Validation errors
	ErrTitleRequired  = errors.New("title is required")
	ErrAuthorRequired = errors.New("author id is required")
	// ErrEmptySlug means the title normalized to nothing; publishing would
	// make the post unreachable, so the write is rejected.
	ErrEmptySlug = errors.New("unable to derive a valid slug from title")
	// ErrSlugProbeExhausted caps the uniqueness retry loop.
	ErrSlugProbeExhausted = errors.New("could not find a free slug within the probe limit")

	// Business rule errors
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("only the post's author can modify it")
)

// ToErrorCode converts an error to the API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return "POST_NOT_FOUND"
	case errors.Is(err, ErrEmptySlug):
		return "EMPTY_SLUG"
	case errors.Is(err, ErrSlugProbeExhausted):
		return "SLUG_PROBE_EXHAUSTED"
	case errors.Is(err, ErrNotOwner):
		return "FORBIDDEN"
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrAuthorRequired):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to the HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return 404
	case errors.Is(err, ErrNotOwner):
		return 403
	case errors.Is(err, ErrSlugProbeExhausted):
		return 409
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrAuthorRequired),
		errors.Is(err, ErrEmptySlug):
		return 400
	default:
		return 500
	}
}
