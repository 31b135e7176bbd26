package room

// RoomState 房间状态
type RoomState int

const (
	RoomStateWaiting RoomState = iota // 等待玩家
	RoomStatePlaying                  // 对局中
	RoomStateEnded                    // 对局结束，等待新开或离开
)

func (s RoomState) String() string {
	switch s {
	case RoomStateWaiting:
		return "waiting"
	case RoomStatePlaying:
		return "playing"
	case RoomStateEnded:
		return "ended"
	default:
		return "unknown"
	}
}
