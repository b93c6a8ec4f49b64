// Package apierror 提供 AWS 风格的错误类型，用于所有服务的统一错误处理
//
// 错误响应格式支持 XML 和 JSON 两种格式：
//
//	XML 格式：
//	<Response>
//	    <Errors>
//	        <Error>
//	            <Code>LanguageResolutionFailed</Code>
//	            <Message>The given language is neither an integer code nor a recognized language choice.</Message>
//	        </Error>
//	    </Errors>
//	    <RequestID>ea966190-f9aa-478e-9ede-example</RequestID>
//	</Response>
//
//	JSON 格式：
//	{
//	    "errors": [
//	        {
//	            "code": "LanguageResolutionFailed",
//	            "message": "The given language is neither an integer code nor a recognized language choice."
//	        }
//	    ],
//	    "requestId": "ea966190-f9aa-478e-9ede-example"
//	}
//
// 使用示例：
//
//	// 创建错误
//	err := apierror.NewError("ResourceNotFound", "The tag 'tag-123' does not exist")
//
//	// 创建错误响应
//	errorResp := apierror.NewErrorResponse("request-id", err)
//
//	// 在 gin 中使用
//	c.XML(http.StatusNotFound, errorResp)
//	// 或
//	c.JSON(http.StatusNotFound, errorResp)
//
// 预定义错误变量（可在代码中直接使用）：
//
//   - ErrAuthorResolutionFailed: 作者无法映射到配置的作者类型
//   - ErrLanguageResolutionFailed: 语言编码或名称无法识别
//   - ErrEntityResolutionFailed: 实体引用无法解析
//   - ErrConfiguration: 默认标签同步器缺少字段配置
//   - ErrInvalidParameter: 请求参数非法
//   - ErrResourceNotFound: 资源不存在
//   - ErrInternalError: 内部错误
//   - ErrServiceUnavailable: 服务不可用
//
// 使用示例：
//
//	// 直接使用预定义的错误
//	errorResp := apierror.NewErrorResponse("request-id", apierror.ErrLanguageResolutionFailed)
//
//	// 或创建自定义错误
//	err := apierror.NewError("CustomError", "Custom error message")
package apierror
