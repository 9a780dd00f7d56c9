package response

// 边界层固定文案
const (
	MsgInternal         = "Internal server error"
	MsgMethodNotAllowed = "Method not allowed"
	MsgNotFound         = "Not found"
	MsgInvalidBody      = "Invalid request body"
	MsgTooManyRequests  = "Too many requests"
	MsgUnauthorized     = "Unauthorized"
	MsgForbidden        = "Forbidden"
	MsgTimeout          = "Request timeout"
	MsgBodyTooLarge     = "Request body too large"
	MsgUnavailable      = "Service unavailable"
)
