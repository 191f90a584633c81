package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// StringPtr 返回字符串的指针
// 可选字段用指针表达"未找到"，空字符串不视为有效值
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CalculateMD5 计算字节内容的MD5指纹，用于日志关联同一份文档
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}
