package view

import (
	"sync"
	"time"
)

// DefaultDebounce 는 검색 입력 등 연속 트리거를 묶는 기본 간격이다.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer 는 마지막 Trigger 이후 간격 d 가 지날 때까지 실행을 미룬다.
// 입력이 계속 들어오는 동안에는 재계산/재동기화가 한 번만 일어난다.
// 정확성 장치가 아니라 과도한 재계산을 막는 장치다.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	timer *time.Timer
}

func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounce
	}
	return &Debouncer{d: d}
}

// Trigger 는 fn 의 실행을 예약한다. 이미 예약이 있으면 타이머를 리셋해서
// 가장 마지막 fn 만 실행되게 한다.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.d, fn)
}

// Stop 은 예약된 실행이 있으면 취소한다.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
