package store

import (
	"context"
	"sync"
	"time"

	"blog-canvas/cmd/gateway/apierr"
	"blog-canvas/cmd/gateway/clients/blogclient"
	"blog-canvas/cmd/gateway/view"
	"blog-canvas/cmd/internal/logger"
	"blog-canvas/models"
)

// Coordinator 는 캐노니컬 컬렉션의 단일 작성자다.
//
// like/bookmark 는 confirm-then-apply 다. 서버 확인 전에는 아무것도 바꾸지
// 않으므로 실패 시 롤백할 것도 없다. 카운터는 항상 서버가 돌려준 값으로
// 덮어쓴다. 다른 뷰어들의 동시 좋아요 때문에 로컬 증감은 안전하지 않다.
//
// 같은 포스트에 대한 연속 뮤테이션의 순서는 보장하지 않는다. 응답은 도착
// 순서대로 반영되므로 느린 첫 응답이 빠른 두 번째 응답을 덮을 수 있다.
// 알려진 한계이고, 필요하면 id 별 직렬화 큐로 강화할 수 있다.
type Coordinator struct {
	store   *Store
	client  *blogclient.Client
	session Identity

	mu         sync.Mutex
	lastParams blogclient.ListParams
	synced     bool

	resync *view.Debouncer
}

// Identity 는 뮤테이션 사전 조건 확인에 필요한 최소 인터페이스다.
type Identity interface {
	Authenticated() bool
}

func NewCoordinator(s *Store, client *blogclient.Client, session Identity, debounce time.Duration) *Coordinator {
	return &Coordinator{
		store:   s,
		client:  client,
		session: session,
		resync:  view.NewDebouncer(debounce),
	}
}

// RefreshList 는 백엔드 목록을 받아 컬렉션을 교체한다.
func (c *Coordinator) RefreshList(ctx context.Context, params blogclient.ListParams) ([]models.Post, int, error) {
	result, err := c.client.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	c.store.ReplaceAll(result.Posts, result.Total)

	c.mu.Lock()
	c.lastParams = params
	c.synced = true
	c.mu.Unlock()

	return result.Posts, result.Total, nil
}

// Synced 는 최초 동기화가 한 번이라도 성공했는지 반환한다.
func (c *Coordinator) Synced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.synced
}

// RequestResync 는 마지막 파라미터로 전체 재동기화를 디바운스 예약한다.
// 검색 입력 연타나 생성 직후의 정합성 재조회를 하나로 묶는다.
func (c *Coordinator) RequestResync() {
	c.resync.Trigger(func() {
		c.mu.Lock()
		params := c.lastParams
		c.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if _, _, err := c.RefreshList(ctx, params); err != nil {
			// 백그라운드 재동기화 실패는 기존 컬렉션을 그대로 두고 기록만 한다.
			logger.WarnWithFields("background resync failed", logger.Fields{"error": err.Error()})
		}
	})
}

// Close 는 예약된 재동기화를 취소한다.
func (c *Coordinator) Close() {
	c.resync.Stop()
}

// FetchBySlug 는 단건을 가져와 캐노니컬 항목을 갱신한다.
// 선택 포인터 관리는 view.Selection 이 한다. 여기서의 Upsert 는 늦게 도착한
// 응답이라도 유효한 최신 서버 상태이므로 항상 반영한다.
func (c *Coordinator) FetchBySlug(ctx context.Context, slug string) (models.Post, error) {
	post, err := c.client.Get(ctx, slug)
	if err != nil {
		return models.Post{}, err
	}
	c.store.Upsert(post)
	return post, nil
}

// Like 는 좋아요 토글이다.
//
// 1. 비로그인 호출은 즉시 Unauthorized 로 실패하고 아무것도 바꾸지 않는다.
// 2. 서버 응답이 오면 likes_count 와 플래그를 응답 값 그대로 덮어쓴다.
// 3. 실패하면 컬렉션은 그대로 두고 에러만 올린다. 자동 재시도는 없다.
func (c *Coordinator) Like(ctx context.Context, id int64) (models.Post, error) {
	if !c.session.Authenticated() {
		return models.Post{}, apierr.ErrUnauthorized
	}

	result, err := c.client.Like(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	c.store.SetLike(id, result.Liked, result.LikesCount)

	post, ok := c.store.Get(id)
	if !ok {
		// 목록에 없는 포스트(상세 직행 등)는 플래그만 확정된 상태다.
		return models.Post{ID: id, Liked: result.Liked, LikesCount: result.LikesCount}, nil
	}
	return post, nil
}

// Bookmark 는 북마크 토글이다. Like 와 같은 모양이고 플래그만 다르다.
func (c *Coordinator) Bookmark(ctx context.Context, id int64) (models.Post, error) {
	if !c.session.Authenticated() {
		return models.Post{}, apierr.ErrUnauthorized
	}

	result, err := c.client.Bookmark(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	c.store.SetBookmark(id, result.Bookmarked)

	post, ok := c.store.Get(id)
	if !ok {
		return models.Post{ID: id, Bookmarked: result.Bookmarked}, nil
	}
	return post, nil
}

// Create 는 서버가 id/slug 를 채워 준 포스트를 목록 앞에 반영하고,
// 정렬/페이지네이션 정합성을 위해 전체 재동기화를 예약한다.
// 로컬 prepend 는 지연 숨김이고, 재동기화가 정답이다.
func (c *Coordinator) Create(ctx context.Context, in blogclient.PostInput) (models.Post, error) {
	if !c.session.Authenticated() {
		return models.Post{}, apierr.ErrUnauthorized
	}

	post, err := c.client.Create(ctx, in)
	if err != nil {
		return models.Post{}, err
	}

	c.store.Prepend(post)
	c.RequestResync()
	return post, nil
}

// Update 는 서버가 확인한 결과로 캐노니컬 항목을 교체한다.
func (c *Coordinator) Update(ctx context.Context, slug string, in blogclient.PostInput) (models.Post, error) {
	if !c.session.Authenticated() {
		return models.Post{}, apierr.ErrUnauthorized
	}

	post, err := c.client.Update(ctx, slug, in)
	if err != nil {
		return models.Post{}, err
	}
	c.store.Upsert(post)
	return post, nil
}

// Delete 는 투기적으로 지우지 않는다. 서버 확정 후에만 컬렉션에서 제거하고,
// 실패하면 포스트는 그대로 남는다.
func (c *Coordinator) Delete(ctx context.Context, slug string) error {
	if !c.session.Authenticated() {
		return apierr.ErrUnauthorized
	}

	post, known := c.store.GetBySlug(slug)

	if err := c.client.Delete(ctx, slug); err != nil {
		return err
	}

	if known {
		c.store.Remove(post.ID)
	}
	return nil
}

// -------------------- Media --------------------

// 미디어 첨부는 포스트 본문과 달리 목록 화면에 보이지 않으므로 스토어를 직접
// 만지지 않는다. 상세 재조회(FetchBySlug)가 최신 첨부 목록을 가져온다.

// AddImage 는 포스트에 이미지를 첨부한다.
func (c *Coordinator) AddImage(ctx context.Context, blogID int64, att blogclient.Attachment) (models.Image, error) {
	if !c.session.Authenticated() {
		return models.Image{}, apierr.ErrUnauthorized
	}
	return c.client.AddImage(ctx, blogID, att)
}

// AddVideo 는 포스트에 비디오를 첨부한다.
func (c *Coordinator) AddVideo(ctx context.Context, blogID int64, att blogclient.Attachment) (models.Video, error) {
	if !c.session.Authenticated() {
		return models.Video{}, apierr.ErrUnauthorized
	}
	return c.client.AddVideo(ctx, blogID, att)
}

// DeleteImage 는 첨부 이미지를 제거한다.
func (c *Coordinator) DeleteImage(ctx context.Context, imageID int64) error {
	if !c.session.Authenticated() {
		return apierr.ErrUnauthorized
	}
	return c.client.DeleteImage(ctx, imageID)
}

// DeleteVideo 는 첨부 비디오를 제거한다.
func (c *Coordinator) DeleteVideo(ctx context.Context, videoID int64) error {
	if !c.session.Authenticated() {
		return apierr.ErrUnauthorized
	}
	return c.client.DeleteVideo(ctx, videoID)
}

// -------------------- Comments --------------------

// 댓글은 어떤 변경이든 트리를 통째로 다시 가져온다. 로컬 트리 병합 버그를
// 피하기 위한 의도된 단순화다.

// RefreshComments 는 포스트의 댓글 트리를 다시 가져와 캐시를 교체한다.
func (c *Coordinator) RefreshComments(ctx context.Context, blogID int64) ([]models.Comment, error) {
	tree, err := c.client.ListComments(ctx, blogID)
	if err != nil {
		return nil, err
	}
	c.store.SetComments(blogID, tree)
	return tree, nil
}

// CreateComment 는 댓글을 만들고 트리를 재조회한다.
func (c *Coordinator) CreateComment(ctx context.Context, blogID int64, content string) ([]models.Comment, error) {
	if !c.session.Authenticated() {
		return nil, apierr.ErrUnauthorized
	}

	if _, err := c.client.CreateComment(ctx, blogID, content); err != nil {
		return nil, err
	}
	return c.RefreshComments(ctx, blogID)
}

// ReplyComment 는 답글을 만들고 트리를 재조회한다.
func (c *Coordinator) ReplyComment(ctx context.Context, blogID, commentID int64, content string) ([]models.Comment, error) {
	if !c.session.Authenticated() {
		return nil, apierr.ErrUnauthorized
	}

	if _, err := c.client.ReplyComment(ctx, commentID, content); err != nil {
		return nil, err
	}
	return c.RefreshComments(ctx, blogID)
}

// UpdateComment 는 댓글을 수정하고 트리를 재조회한다.
func (c *Coordinator) UpdateComment(ctx context.Context, blogID, commentID int64, content string) ([]models.Comment, error) {
	if !c.session.Authenticated() {
		return nil, apierr.ErrUnauthorized
	}

	if _, err := c.client.UpdateComment(ctx, commentID, content); err != nil {
		return nil, err
	}
	return c.RefreshComments(ctx, blogID)
}

// DeleteComment 는 댓글을 지우고 트리를 재조회한다.
func (c *Coordinator) DeleteComment(ctx context.Context, blogID, commentID int64) ([]models.Comment, error) {
	if !c.session.Authenticated() {
		return nil, apierr.ErrUnauthorized
	}

	if err := c.client.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}
	return c.RefreshComments(ctx, blogID)
}
