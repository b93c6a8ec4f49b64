package entity

// Author 标签作者
// Staff 为 true 的作者打出的标签自动标记为官方标签
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Staff     bool   `json:"staff"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Authorable 可以提供标签作者的类型
// 对应"携带作者身份的值"：实现了该接口的任意值都能被解析为作者
type Authorable interface {
	TagAuthor() *Author
}

// CreateAuthorRequest 创建作者请求
type CreateAuthorRequest struct {
	Name  string `json:"name" binding:"required"`
	Staff bool   `json:"staff,omitempty"`
}

// CreateAuthorResponse 创建作者响应
type CreateAuthorResponse struct {
	Author *Author `json:"author"`
}

// DescribeAuthorsRequest 查询作者请求
type DescribeAuthorsRequest struct {
	AuthorIDs []string `json:"authorIDs,omitempty"`
}

// DescribeAuthorsResponse 查询作者响应
type DescribeAuthorsResponse struct {
	Authors []Author `json:"authors"`
}
