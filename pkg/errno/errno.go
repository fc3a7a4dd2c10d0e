package errno

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage returns a copy carrying the same code with a more specific message
func (e Errno) WithMessage(msg string) Errno {
	return Errno{Code: e.Code, Message: msg}
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Is reports whether err carries the same code as target.
// gorm 等库常常会 wrap 错误，这里只按 Code 比较。
func Is(err error, target Errno) bool {
	switch typed := err.(type) {
	case *Errno:
		return typed.Code == target.Code
	case Errno:
		return typed.Code == target.Code
	default:
		return false
	}
}

// IsRetryable 判断错误是否可以安全重试。
// 幂等性由 resolution 的条件写保证，所以 StoreUnavailable 可以整单重试。
func IsRetryable(err error) bool {
	return Is(err, ErrStoreUnavailable)
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrTokenInvalid     = Errno{Code: 10003, Message: "Token invalid"}
	ErrStoreUnavailable = Errno{Code: 10004, Message: "Store unavailable, retry later"}
)

// Business Errors (20000+)
var (
	ErrUserNotFound      = Errno{Code: 20101, Message: "User not found"}
	ErrDepositNotFound   = Errno{Code: 20201, Message: "Deposit transaction not found"}
	ErrAlreadyResolved   = Errno{Code: 20202, Message: "Deposit transaction already resolved"}
	ErrMissingAmount     = Errno{Code: 20203, Message: "Deposit amount not set or not positive"}
	ErrUnknownCoin       = Errno{Code: 20204, Message: "Unknown coin type"}
	ErrInvalidAmount     = Errno{Code: 20301, Message: "Amount must be positive with at most 2 decimal places"}
	ErrInsufficientFunds = Errno{Code: 20302, Message: "Insufficient funds"}
)
