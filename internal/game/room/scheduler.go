package room

import (
	"sync"
	"time"
)

// scheduler 房间内的延时任务，可整体取消
type scheduler struct {
	mu      sync.Mutex
	timers  map[uint64]*time.Timer
	nextID  uint64
	stopped bool
}

func newScheduler() *scheduler {
	return &scheduler{timers: make(map[uint64]*time.Timer)}
}

// After 延时 d 后执行 fn；调度器停止后不再接受新任务
func (s *scheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	id := s.nextID
	s.nextID++
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, pending := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		if !pending {
			return
		}
		fn()
	})
}

// CancelAll 取消所有未触发的任务
func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Stop 取消所有任务并拒绝之后的调度
func (s *scheduler) Stop() {
	s.CancelAll()
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

// Pending 未触发的任务数
func (s *scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
