// Package model 定义数据库实体模型
// 本文件提供无序身份对的规范化工具
// 连接与会话都以"无序对"为唯一键：无论调用方以 (A,B) 还是 (B,A)
// 传入，都必须落到同一条存储记录上
package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// CanonicalPair 将两个身份 ID 规范化为字典序 (小, 大)
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// PairKey 计算无序对的规范哈希键
// 对排序后的 "小:大" 取 SHA-256，作为唯一索引列的值
// 哈希前必须先排序，否则 (A,B) 和 (B,A) 会产生两条记录
func PairKey(a, b string) string {
	lo, hi := CanonicalPair(a, b)
	sum := sha256.Sum256([]byte(lo + ":" + hi))
	return hex.EncodeToString(sum[:])
}
