// Package relationship_enum 定义按查看者视角解析后的关系标签
// 存储层只有 {pending, accepted, blocked} 三种状态，
// 对外展示时结合查看者身份派生为五种标签
package relationship_enum

const (
	NONE     = "none"     // 无任何关系
	PENDING  = "pending"  // 我发出的申请，等待对方处理
	INCOMING = "incoming" // 对方发来的申请，等待我处理
	ACCEPTED = "accepted" // 已是好友
	BLOCKED  = "blocked"  // 已拉黑
)

// 方向标签，标识存储行相对查看者的方向
const (
	DirectionOutgoing = "outgoing" // 查看者是发起方
	DirectionIncoming = "incoming" // 查看者是接收方
)
