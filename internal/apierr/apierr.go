package apierr

// Business error codes shared between modules. Codes are stable: clients key on them.
const (
	CodeInvalidParams  = 1001 // missing/empty request fields, lost identity
	CodeBadPagination  = 1002 // non-integer page/per_page
	CodeBadFileType    = 1003 // avatar extension outside the allow-list
	CodeLoginRequired  = 2001
	CodeBadCredentials = 2002
	CodeUsernameTaken  = 2003
	CodeNotFound       = 3001
	CodeForbidden      = 4001
)

// Error is a business failure raised inside a handler and translated once at the
// boundary into the error envelope. ErrorCode 0 means "no business code".
type Error struct {
	Message    string
	StatusCode int
	ErrorCode  int
}

// New builds an Error with the given HTTP status and business code.
func New(message string, statusCode, errorCode int) *Error {
	return &Error{Message: message, StatusCode: statusCode, ErrorCode: errorCode}
}

func (e *Error) Error() string {
	return e.Message
}
