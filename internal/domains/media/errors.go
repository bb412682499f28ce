package media

import "errors"

var (
	ErrUnsupportedType = errors.New("only image uploads are supported")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrEmptyFile       = errors.New("uploaded file is empty")
)

// ToErrorCode converts an error to the API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return "UNSUPPORTED_TYPE"
	case errors.Is(err, ErrFileTooLarge):
		return "FILE_TOO_LARGE"
	case errors.Is(err, ErrEmptyFile):
		return "EMPTY_FILE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to the HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return 415
	case errors.Is(err, ErrFileTooLarge):
		return 413
	case errors.Is(err, ErrEmptyFile):
		return 400
	default:
		return 500
	}
}
