package entity

// Tag 一条标签记录：一个规范词干、一个实体、一个作者、一种语言的关联
type Tag struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Language     int    `json:"language"`
	LanguageName string `json:"languageName,omitempty"`
	StemID       string `json:"stemID,omitempty"`
	AuthorID     string `json:"authorID"`
	Official     bool   `json:"official"`
	Entity       Ref    `json:"entity"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// Stem 一个规范的 (名称, 语言) 词干，携带引用计数
type Stem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Language     int    `json:"language"`
	LanguageName string `json:"languageName,omitempty"`
	TagCount     uint   `json:"tagCount"`
}

// SimilarObject 相似实体及其与目标实体的距离
// 距离是两个实体词干集合的对称差大小，越小越相似
type SimilarObject struct {
	Entity   Ref `json:"entity"`
	Distance int `json:"distance"`
}

// TagEntityRequest 给实体打标签请求
// Names 是标签输入文本（支持逗号/空格分隔和双引号转义）
// Language 可以是整数编码或语言名称
type TagEntityRequest struct {
	EntityType string `json:"entityType" binding:"required"`
	EntityID   string `json:"entityID" binding:"required"`
	Names      string `json:"names" binding:"required"`
	Language   any    `json:"language" binding:"required"`
	Author     string `json:"author" binding:"required"`
}

// TagEntityResponse 打标签响应
type TagEntityResponse struct {
	Tags []Tag `json:"tags"`
}

// UntagEntityRequest 移除实体标签请求
// 移除不存在的标签不是错误（幂等）
type UntagEntityRequest struct {
	EntityType string `json:"entityType" binding:"required"`
	EntityID   string `json:"entityID" binding:"required"`
	Names      string `json:"names" binding:"required"`
	Language   any    `json:"language" binding:"required"`
	Author     string `json:"author" binding:"required"`
}

// UntagEntityResponse 移除标签响应
type UntagEntityResponse struct {
	Return bool `json:"return"`
}

// UntagAllRequest 批量移除实体标签请求，过滤条件都是可选的
type UntagAllRequest struct {
	EntityType string `json:"entityType" binding:"required"`
	EntityID   string `json:"entityID" binding:"required"`
	Names      string `json:"names,omitempty"`
	Language   any    `json:"language,omitempty"`
	Author     string `json:"author,omitempty"`
}

// UntagAllResponse 批量移除标签响应
type UntagAllResponse struct {
	Deleted int64 `json:"deleted"`
}

// DescribeTagsRequest 查询实体标签请求
type DescribeTagsRequest struct {
	EntityType string `json:"entityType" binding:"required"`
	EntityID   string `json:"entityID" binding:"required"`
}

// DescribeTagsResponse 查询实体标签响应
type DescribeTagsResponse struct {
	Tags []Tag `json:"tags"`
}

// DescribeStemsRequest 查询实体词干请求
// EntityType/EntityID 为空时返回全部词干
type DescribeStemsRequest struct {
	EntityType   string `json:"entityType,omitempty"`
	EntityID     string `json:"entityID,omitempty"`
	OfficialOnly bool   `json:"officialOnly,omitempty"`
	Language     any    `json:"language,omitempty"`
}

// DescribeStemsResponse 查询词干响应
type DescribeStemsResponse struct {
	Stems []Stem `json:"stems"`
}

// SyncDefaultTagsRequest 同步默认标签请求
// Text 是实体携带的标签文本字段，整体替换同步身份下的已有标签
type SyncDefaultTagsRequest struct {
	EntityType string `json:"entityType" binding:"required"`
	EntityID   string `json:"entityID" binding:"required"`
	Text       string `json:"text"`
}

// SyncDefaultTagsResponse 同步默认标签响应
// Text 是规范化后的标签文本
type SyncDefaultTagsResponse struct {
	Text string `json:"text"`
	Tags []Tag  `json:"tags"`
}

// DescribeSimilarRequest 查询相似实体请求
type DescribeSimilarRequest struct {
	EntityType   string `json:"entityType" binding:"required"`
	EntityID     string `json:"entityID" binding:"required"`
	SameType     bool   `json:"sameType,omitempty"`
	OfficialOnly bool   `json:"officialOnly,omitempty"`
	Author       string `json:"author,omitempty"`
	Language     any    `json:"language,omitempty"`
}

// DescribeSimilarResponse 查询相似实体响应，按距离升序排列
type DescribeSimilarResponse struct {
	Similar []SimilarObject `json:"similar"`
}
