package constants

import "time"

const (
	REDIS_TIMEOUT              = 1   // 缓存过期时间（分钟）
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天

	MESSAGE_MAX_LEN  = 1000 // 单条消息最大长度（字符）
	MESSAGE_PAGE_MAX = 100  // 单次拉取消息的上限
	MESSAGE_PAGE_DEF = 50   // 未指定 limit 时的默认页大小

	TAPIN_TOKEN_TTL    = 5 * time.Minute // 面对面加好友令牌有效期
	REPORT_COOLDOWN    = 24 * time.Hour  // 同一举报人对同一目标的举报冷却期
	SEARCH_MAX_RESULTS = 20              // 通讯录搜索返回条数上限
)
