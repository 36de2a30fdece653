package errno

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage returns a copy of the Errno carrying a more specific message.
// The code is preserved so the caller can still classify the failure.
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

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
)

// Transfer Errors (20100+)
// 面向用户的提示必须是无技术细节的文案，原始错误只进日志。
var (
	ErrNoActiveAccount   = Errno{Code: 20101, Message: "No active account loaded"}
	ErrLoadAccount       = Errno{Code: 20102, Message: "Failed to load account"}
	ErrPrepareFailed     = Errno{Code: 20103, Message: "Failed to prepare transaction"}
	ErrConfirmWithoutSim = Errno{Code: 20104, Message: "Cannot confirm: Simulation failed or not run"}
	ErrIntentMismatch    = Errno{Code: 20105, Message: "Pending transaction does not match the confirmed intent"}
	ErrBroadcastFailed   = Errno{Code: 20106, Message: "Failed to broadcast transaction"}
	ErrUnsupportedChain  = Errno{Code: 20107, Message: "Unsupported chain"}
)

// Custody / Authorization Errors (20200+)
// 授权类错误必须与资金/网络错误区分，UI 才能引导用户重新认证。
var (
	ErrAuthorization = Errno{Code: 20201, Message: "Authorization required"}
	ErrKeyNotFound   = Errno{Code: 20202, Message: "Key not found"}
	ErrSignFailed    = Errno{Code: 20203, Message: "Failed to sign transaction"}
)

// Recovery Errors (20300+)
var (
	ErrSplitFailed       = Errno{Code: 20301, Message: "Failed to split secret"}
	ErrReconstructFailed = Errno{Code: 20302, Message: "Failed to reconstruct secret"}
)
