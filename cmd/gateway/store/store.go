package store

import (
	"sync"

	"blog-canvas/models"
)

// Store 는 캐노니컬 인메모리 컬렉션이다.
//
// 불변식: 같은 id 의 Post 표현은 컬렉션에 정확히 하나만 존재한다. 목록/상세
// 화면은 Snapshot 으로 얻은 파생 뷰만 보고, 쓰기는 전부 코디네이터를 거친다.
// 프레젠테이션 코드가 직접 패치하는 경로는 없다.
//
// 댓글 트리는 포스트별로 통째로 교체된다(부분 패치 없음).
type Store struct {
	mu       sync.RWMutex
	order    []int64
	posts    map[int64]models.Post
	comments map[int64][]models.Comment
	total    int
}

func New() *Store {
	return &Store{
		posts:    map[int64]models.Post{},
		comments: map[int64][]models.Comment{},
	}
}

// ReplaceAll 은 서버 목록 응답으로 컬렉션을 통째로 교체한다.
// 응답에 같은 id 가 중복돼 있어도 첫 번째 것만 남긴다.
func (s *Store) ReplaceAll(posts []models.Post, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.posts = make(map[int64]models.Post, len(posts))
	for _, p := range posts {
		if _, ok := s.posts[p.ID]; ok {
			continue
		}
		s.order = append(s.order, p.ID)
		s.posts[p.ID] = p
	}
	s.total = total
}

// Snapshot 은 캐노니컬 순서의 복사본을 반환한다. 파생 뷰 계산 입력으로만 쓴다.
func (s *Store) Snapshot() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.posts[id])
	}
	return out
}

// Total 은 마지막으로 알려진 서버측 전체 개수를 반환한다.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) Get(id int64) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	return p, ok
}

func (s *Store) GetBySlug(slug string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if s.posts[id].Slug == slug {
			return s.posts[id], true
		}
	}
	return models.Post{}, false
}

// Upsert 는 서버가 확인해 준 포스트 하나를 반영한다.
// 이미 있으면 자리를 유지한 채 교체하고, 없으면 끝에 추가한다.
func (s *Store) Upsert(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.posts[p.ID] = p
}

// Prepend 는 새로 생성된 포스트를 목록 앞에 끼워 넣는다.
// 정렬/페이지네이션 일치는 이어지는 전체 재동기화가 보장하고, 이 반영은
// 지연 숨김용이다.
func (s *Store) Prepend(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[p.ID]; ok {
		s.posts[p.ID] = p
		return
	}
	s.order = append([]int64{p.ID}, s.order...)
	s.posts[p.ID] = p
	s.total++
}

// Remove 는 삭제가 서버에서 확정된 뒤에만 호출된다.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return false
	}
	delete(s.posts, id)
	delete(s.comments, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.total > 0 {
		s.total--
	}
	return true
}

// SetLike 는 서버가 돌려준 값 그대로 좋아요 상태를 덮어쓴다.
// 로컬 증감은 하지 않는다. 카운터의 단일 진실은 서버다.
func (s *Store) SetLike(id int64, liked bool, likesCount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return false
	}
	p.Liked = liked
	p.LikesCount = likesCount
	s.posts[id] = p
	return true
}

// SetBookmark 는 서버가 돌려준 북마크 상태를 덮어쓴다.
func (s *Store) SetBookmark(id int64, bookmarked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return false
	}
	p.Bookmarked = bookmarked
	s.posts[id] = p
	return true
}

// SetComments 는 포스트의 댓글 트리를 통째로 교체하고 comments_count 를
// 새 트리 기준으로 다시 계산한다.
func (s *Store) SetComments(blogID int64, tree []models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments[blogID] = tree

	if p, ok := s.posts[blogID]; ok {
		count := 0
		for _, c := range tree {
			count += c.TreeSize()
		}
		p.CommentsCount = count
		s.posts[blogID] = p
	}
}

// Comments 는 캐시된 댓글 트리를 반환한다. 아직 가져온 적이 없으면 ok=false.
func (s *Store) Comments(blogID int64) ([]models.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tree, ok := s.comments[blogID]
	return tree, ok
}
