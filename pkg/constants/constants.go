package constants

import "time"

const (
	CHANNEL_SIZE  = 100      // 通道大小
	FILE_MAX_SIZE = 10 << 20 // 上传文件最大大小（10MB）

	ACCESS_CODE_LENGTH = 8 // 私密房间访问码长度

	MESSAGE_PAGE_SIZE     = 50  // 消息拉取默认分页大小
	MESSAGE_PAGE_MAX      = 200 // 消息拉取分页上限
	ROOM_HISTORY_SIZE     = 30  // 进入房间时加载的历史消息条数
	PRESENCE_STALE_MINUTE = 5   // 在线判定的存活窗口（分钟）

	REDIS_TIMEOUT = 1 * time.Minute // 缓存过期时间
)

// RoomType 房间类型
const (
	ROOM_TYPE_PUBLIC  = "public"
	ROOM_TYPE_PRIVATE = "private"
)

// MessageType 消息类型
const (
	MESSAGE_TYPE_TEXT  = "text"
	MESSAGE_TYPE_FILE  = "file"
	MESSAGE_TYPE_IMAGE = "image"
)

// BlockType 封禁类型
const (
	BLOCK_TYPE_TEMPORARY = "temporary"
	BLOCK_TYPE_PERMANENT = "permanent"
)
