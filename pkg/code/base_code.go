package code

import "net/http"

// 成功码
var (
	Success        = NewSuss(1, lang{en: "success", zh_cn: "成功"})
	SuccessCreated = NewSuss(2, lang{en: "created", zh_cn: "创建成功"})
)

// 服务级错误码
var (
	ErrorServerInternal = NewError(10001, lang{en: "internal server error", zh_cn: "服务内部错误"}).WithHTTPStatus(http.StatusInternalServerError)
	ErrorInvalidParams  = NewError(10002, lang{en: "invalid request parameters", zh_cn: "请求参数错误"}).WithHTTPStatus(http.StatusBadRequest)
	ErrorNotFound       = NewError(10003, lang{en: "resource not found", zh_cn: "资源不存在"}).WithHTTPStatus(http.StatusNotFound)
	ErrorForbidden      = NewError(10004, lang{en: "forbidden", zh_cn: "没有权限"}).WithHTTPStatus(http.StatusForbidden)
)

// 条目相关错误码
var (
	ErrorItemNotFound     = NewError(20001, lang{en: "item not found", zh_cn: "条目不存在"}).WithHTTPStatus(http.StatusNotFound)
	ErrorItemInvalid      = NewError(20002, lang{en: "item is structurally invalid", zh_cn: "条目结构无效"}).WithHTTPStatus(http.StatusUnprocessableEntity)
	ErrorItemShareMissing = NewError(20003, lang{en: "item references a share that does not exist", zh_cn: "条目引用的分享不存在"}).WithHTTPStatus(http.StatusUnprocessableEntity)
	ErrorPayloadTooLarge  = NewError(20004, lang{en: "item exceeds the maximum allowed size", zh_cn: "条目超过单条大小限制"}).WithHTTPStatus(http.StatusRequestEntityTooLarge)
	ErrorOverTotalQuota   = NewError(20005, lang{en: "account total size quota exceeded", zh_cn: "账户总容量超出限制"}).WithHTTPStatus(http.StatusRequestEntityTooLarge)
	ErrorItemNameTaken    = NewError(20006, lang{en: "item name already taken by another item", zh_cn: "条目名称已被其他条目占用"}).WithHTTPStatus(http.StatusUnprocessableEntity)
)

// 分享相关错误码
var (
	ErrorShareNotFound         = NewError(30001, lang{en: "share not found", zh_cn: "分享不存在"}).WithHTTPStatus(http.StatusNotFound)
	ErrorShareRootHasParent    = NewError(30002, lang{en: "only a root folder can be shared", zh_cn: "只有根文件夹可以被分享"}).WithHTTPStatus(http.StatusBadRequest)
	ErrorNotShareOwner         = NewError(30003, lang{en: "only the share owner can do this", zh_cn: "只有分享拥有者才能执行该操作"}).WithHTTPStatus(http.StatusForbidden)
	ErrorShareSelfInvite       = NewError(30004, lang{en: "cannot share with yourself", zh_cn: "不能分享给自己"}).WithHTTPStatus(http.StatusBadRequest)
	ErrorShareUserExists       = NewError(30005, lang{en: "recipient already invited to this share", zh_cn: "该用户已被邀请"}).WithHTTPStatus(http.StatusBadRequest)
	ErrorShareUserNotFound     = NewError(30006, lang{en: "share invitation not found", zh_cn: "分享邀请不存在"}).WithHTTPStatus(http.StatusNotFound)
	ErrorShareStatusTransition = NewError(30007, lang{en: "invalid share invitation state transition", zh_cn: "分享邀请状态转换无效"}).WithHTTPStatus(http.StatusBadRequest)
	ErrorSharingDisabled       = NewError(30008, lang{en: "sharing is not enabled for this account", zh_cn: "该账户未启用分享功能"}).WithHTTPStatus(http.StatusForbidden)
	ErrorNotShareParticipant   = NewError(30009, lang{en: "not a participant of this share", zh_cn: "不是该分享的参与者"}).WithHTTPStatus(http.StatusForbidden)
)

// 用户相关错误码
var (
	ErrorUserNotFound = NewError(40001, lang{en: "user not found", zh_cn: "用户不存在"}).WithHTTPStatus(http.StatusNotFound)
	ErrorUserDisabled = NewError(40002, lang{en: "account is disabled", zh_cn: "账户已被禁用"}).WithHTTPStatus(http.StatusForbidden)
)

// 存储相关错误码
var (
	ErrorInvalidStorageType = NewError(50001, lang{en: "invalid storage type", zh_cn: "存储类型无效"})
	ErrorStorageWrite       = NewError(50002, lang{en: "storage write failed", zh_cn: "存储写入失败"}).WithHTTPStatus(http.StatusInternalServerError)
	ErrorStorageRead        = NewError(50003, lang{en: "storage read failed", zh_cn: "存储读取失败"}).WithHTTPStatus(http.StatusInternalServerError)
)

// 后台任务相关错误码
var (
	ErrorSizeJobRunning = NewError(60001, lang{en: "total size calculation already in progress", zh_cn: "容量统计任务已在运行"}).WithHTTPStatus(http.StatusConflict)
)
