package protocol

// 错误码
const (
	ErrCodeUnknown           = 1000
	ErrCodeInvalidMsg        = 1001
	ErrCodeRateLimit         = 1002 // 速率限制
	ErrCodeRoomNotFound      = 2001
	ErrCodeRoomFull          = 2002
	ErrCodeNotInRoom         = 2003
	ErrCodeGameNotStart      = 3001
	ErrCodeOutOfTurn         = 3002
	ErrCodeCardNotInHand     = 3003
	ErrCodeRaiseNotAllowed   = 3004
	ErrCodeHandNotInProgress = 3005
	ErrCodeInvalidCard       = 3006
	ErrCodeHandInProgress    = 3007
	ErrCodeGameOver          = 3008
	ErrCodeInsufficientCards = 4001
	ErrCodeEmptyDeck         = 4002
	ErrCodeInvalidSeatCount  = 4003
	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "未知错误",
	ErrCodeInvalidMsg:        "无效的消息格式",
	ErrCodeRateLimit:         "请求过于频繁",
	ErrCodeRoomNotFound:      "房间不存在",
	ErrCodeRoomFull:          "房间已满",
	ErrCodeNotInRoom:         "您不在房间中",
	ErrCodeGameNotStart:      "游戏尚未开始",
	ErrCodeOutOfTurn:         "还没轮到您",
	ErrCodeCardNotInHand:     "您手中没有这张牌",
	ErrCodeRaiseNotAllowed:   "现在不能叫 Truco",
	ErrCodeHandNotInProgress: "本局尚未开始或已结束",
	ErrCodeInvalidCard:       "无效的牌",
	ErrCodeHandInProgress:    "本局还在进行中",
	ErrCodeGameOver:          "对局已结束，请开始新的一局",
	ErrCodeInsufficientCards: "牌堆剩余的牌不够发",
	ErrCodeEmptyDeck:         "牌堆已空",
	ErrCodeInvalidSeatCount:  "座位数只能是 2 或 4",
	ErrCodeServerMaintenance: "服务器维护中",
}
