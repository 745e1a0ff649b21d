package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldItemID 条目 ID 字段
	FieldItemID = "itemId"

	// FieldItemName 条目名称字段
	FieldItemName = "itemName"

	// FieldShareID 分享 ID 字段
	FieldShareID = "shareId"

	// FieldCursor 游标字段
	FieldCursor = "cursor"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 大小字段
	FieldSize = "size"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldStorage 存储驱动字段
	FieldStorage = "storage"
)
