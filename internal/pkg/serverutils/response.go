package serverutils

type BaseResponse[T any] struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Data    T        `json:"data,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Code:    code,
		Message: message,
	}
}

// FieldErrorResponse carries the offending field names so the client can
// prompt for exactly those.
func FieldErrorResponse(code int, message string, fields []string) BaseResponse[any] {
	return BaseResponse[any]{
		Code:    code,
		Message: message,
		Fields:  fields,
	}
}
