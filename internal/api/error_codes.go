// internal/api/error_codes.go
package api

// API错误代码常量
const (
	// 通用错误
	ErrorBadRequest    = "BAD_REQUEST"
	ErrorNotFound      = "NOT_FOUND"
	ErrorInternalError = "INTERNAL_ERROR"
	ErrorConflict      = "CONFLICT"
	ErrorUnauthorized  = "UNAUTHORIZED"

	// 角色相关错误
	ErrorCharacterNotFound = "CHARACTER_NOT_FOUND"
	ErrorCharacterInvalid  = "CHARACTER_INVALID"

	// 模板相关错误
	ErrorTemplateNotFound = "TEMPLATE_NOT_FOUND"
	ErrorTemplateInvalid  = "TEMPLATE_INVALID"

	// 白名单相关错误
	ErrorWhitelistDuplicate = "WHITELIST_DUPLICATE"
	ErrorPhoneInvalid       = "PHONE_INVALID"

	// 认证相关错误
	ErrorLoginFailed  = "LOGIN_FAILED"
	ErrorTokenInvalid = "TOKEN_INVALID"

	// 文件相关错误
	ErrorFileUploadFailed = "FILE_UPLOAD_FAILED"
	ErrorFileInvalid      = "FILE_INVALID"
)
