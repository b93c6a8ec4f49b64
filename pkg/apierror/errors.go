package apierror

// 标签引擎预定义错误
// 这些都是调用方输入或集成配置的前置条件错误，必须立即返回给调用方，
// 不允许静默吞掉（参考各服务的错误处理约定）
var (
	// ErrAuthorResolutionFailed 无法把给定的作者值映射到配置的作者身份类型
	ErrAuthorResolutionFailed = &Error{
		Code:       "AuthorResolutionFailed",
		Message:    "The given author is neither an author ID, an Author, nor a value with a TagAuthor or TagUser accessor of that type.",
		HTTPStatus: 400,
	}

	// ErrLanguageResolutionFailed 语言既不是整数编码也不是已知的语言名称
	ErrLanguageResolutionFailed = &Error{
		Code:       "LanguageResolutionFailed",
		Message:    "The given language is neither an integer code nor a recognized language choice.",
		HTTPStatus: 400,
	}

	// ErrEntityResolutionFailed 实体引用不是已注册类型或缺少实例 ID
	ErrEntityResolutionFailed = &Error{
		Code:       "EntityResolutionFailed",
		Message:    "The given entity reference is neither a registered entity type nor has an instance ID.",
		HTTPStatus: 400,
	}

	// ErrConfiguration 默认标签同步器缺少作者或语言字段配置
	ErrConfiguration = &Error{
		Code:       "ConfigurationError",
		Message:    "No compatible author or language field configured for default tags.",
		HTTPStatus: 500,
	}

	// ErrInvalidParameter 请求参数非法
	ErrInvalidParameter = &Error{
		Code:       "InvalidParameter",
		Message:    "One or more request parameters are invalid.",
		HTTPStatus: 400,
	}

	// ErrResourceNotFound 请求的资源不存在
	ErrResourceNotFound = &Error{
		Code:       "ResourceNotFound",
		Message:    "The requested resource does not exist.",
		HTTPStatus: 404,
	}

	// ErrInternalError 发生了内部错误，重试请求，如果问题仍然存在请联系管理员
	ErrInternalError = &Error{
		Code:    "InternalError",
		Message: "An internal error has occurred. Retry your request, but if the problem persists, contact the administrator.",
	}

	// ErrServiceUnavailable 由于服务器临时故障，请求失败
	ErrServiceUnavailable = &Error{
		Code:    "ServiceUnavailable",
		Message: "The request has failed due to a temporary failure of the server.",
	}
)
