package logic

import "errors"

// 业务错误分类，handler层据此映射HTTP状态码
var (
	ErrNotFound   = errors.New("记录不存在")
	ErrValidation = errors.New("参数校验失败")
	ErrForbidden  = errors.New("无操作权限")
	ErrDuplicate  = errors.New("记录已存在")
	ErrRemoteCall = errors.New("链上调用失败")
)

// Signer 链下消息签名能力，由以太坊客户端实现
type Signer interface {
	SignMessage(message string) (string, error)
}
