package view

import (
	"context"
	"errors"
	"sync"

	"blog-canvas/models"
)

// ErrStale 은 선택이 이미 다른 대상으로 넘어간 뒤에 도착한 응답임을 뜻한다.
// 호출자는 이 결과를 화면에 반영하면 안 된다.
var ErrStale = errors.New("stale selection response")

// FetchFunc 은 선택 대상 하나를 가져온다(보통 코디네이터의 slug 조회).
type FetchFunc func(ctx context.Context) (models.Post, error)

// Selection 은 "현재 선택된 포스트" 포인터다. 복사본이 아니라 캐노니컬
// 컬렉션에 대한 식별자(id)만 들고 있어서, 뮤테이션이 확정되면 다음 조회에서
// 자동으로 최신 상태가 보인다.
//
// 느린 첫 조회가 빠른 두 번째 조회보다 늦게 도착해도 포인터를 되돌리지
// 않도록, 조회마다 시퀀스를 올리고 완료 시점에 아직 최신인지 확인한다.
type Selection struct {
	mu  sync.Mutex
	seq uint64
	id  int64
}

func NewSelection() *Selection {
	return &Selection{}
}

// Select 는 fetch 를 실행하고, 그 사이 다른 Select/Clear 가 없었을 때만
// 포인터를 갱신한다. 추월당한 조회는 (zero, ErrStale)로 끝난다.
func (s *Selection) Select(ctx context.Context, fetch FetchFunc) (models.Post, error) {
	s.mu.Lock()
	s.seq++
	mySeq := s.seq
	s.mu.Unlock()

	post, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != mySeq {
		return models.Post{}, ErrStale
	}
	if err != nil {
		s.id = 0
		return models.Post{}, err
	}
	s.id = post.ID
	return post, nil
}

// Current 는 선택된 포스트의 id 를 반환한다. 없으면 ok=false.
func (s *Selection) Current() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.id != 0
}

// Clear 는 선택을 해제하고, 진행 중인 조회가 있었다면 그 결과를 무효화한다.
// 상세 화면에서 벗어날 때 호출한다.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.seq++
	s.id = 0
	s.mu.Unlock()
}
