package services

import (
	"context"
	"io"
	"time"

	"blog-canvas/cmd/gateway/clients/blogclient"
	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/store"
	"blog-canvas/cmd/gateway/view"
	"blog-canvas/models"
)

// BlogService 는 캐노니컬 컬렉션 위의 목록/상세 프로젝션과 뮤테이션 진입점을
// 묶는다. 읽기는 store 스냅샷에서, 쓰기는 전부 coordinator 를 거친다.
type BlogService struct {
	store     *store.Store
	coord     *store.Coordinator
	client    *blogclient.Client
	selection *view.Selection
	pageSize  int
}

func NewBlogService(st *store.Store, coord *store.Coordinator, client *blogclient.Client, defaultPageSize int) *BlogService {
	if defaultPageSize < 1 {
		defaultPageSize = 20
	}
	return &BlogService{
		store:     st,
		coord:     coord,
		client:    client,
		selection: view.NewSelection(),
		pageSize:  defaultPageSize,
	}
}

// ListPostsInput 은 목록 프로젝션 파라미터다. 필터는 전부 AND 결합이다.
type ListPostsInput struct {
	Search    string
	Category  string
	Tags      []string
	Author    string
	DateFrom  time.Time
	DateTo    time.Time
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// List 는 캐노니컬 스냅샷에 필터/정렬/페이지네이션을 적용해 반환한다.
//
// 최초 호출이면 백엔드에서 컬렉션을 동기화하고, 이후에는 로컬 프로젝션만
// 계산한다. 검색 요청은 디바운스된 백그라운드 재동기화를 함께 예약해서
// 타이핑이 멈춘 뒤 서버 기준으로 한 번 더 맞춘다.
func (s *BlogService) List(ctx context.Context, in ListPostsInput) (dto.PaginationPostDTO, error) {
	if !s.coord.Synced() {
		if _, _, err := s.coord.RefreshList(ctx, blogclient.ListParams{}); err != nil {
			return dto.PaginationPostDTO{}, err
		}
	} else if in.Search != "" {
		s.coord.RequestResync()
	}

	filtered := view.Apply(s.store.Snapshot(), view.Filter{
		Search:    in.Search,
		Category:  in.Category,
		Tags:      in.Tags,
		Author:    in.Author,
		DateFrom:  in.DateFrom,
		DateTo:    in.DateTo,
		SortBy:    in.SortBy,
		SortOrder: view.SortOrder(in.SortOrder),
	})

	pageSize := in.PageSize
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	page := view.Paginate(filtered, in.Page, pageSize)

	return dto.PaginationPostDTO{
		Data:     dto.NewPostDTOs(page.Posts),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	}, nil
}

// Sync 는 백엔드 목록으로 컬렉션을 강제 재동기화한다.
func (s *BlogService) Sync(ctx context.Context) (int, error) {
	posts, _, err := s.coord.RefreshList(ctx, blogclient.ListParams{})
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// Get 은 slug 상세를 가져와 현재 선택으로 만든다. 조회 도중 다른 선택이
// 끼어들면 view.ErrStale 이 반환되고 그 결과는 버려져야 한다.
func (s *BlogService) Get(ctx context.Context, slug string) (dto.PostDTO, error) {
	post, err := s.selection.Select(ctx, func(ctx context.Context) (models.Post, error) {
		return s.coord.FetchBySlug(ctx, slug)
	})
	if err != nil {
		return dto.PostDTO{}, err
	}
	return dto.NewPostDTO(post), nil
}

// ClearSelection 은 상세 화면에서 벗어났음을 알린다.
func (s *BlogService) ClearSelection() {
	s.selection.Clear()
}

// PostInput 은 생성/수정 공통 입력이다. FeaturedImage 는 multipart 요청일 때만 온다.
type PostInput struct {
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	CategoryID    int64            `json:"category_id"`
	Tags          []string         `json:"tags"`
	LayoutType    string           `json:"layout_type"`
	Published     *bool            `json:"published"`
	FeaturedImage *AttachmentInput `json:"-"`
}

func (in PostInput) toClient() blogclient.PostInput {
	out := blogclient.PostInput{
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: in.CategoryID,
		Tags:       in.Tags,
		LayoutType: in.LayoutType,
		Published:  in.Published,
	}
	if in.FeaturedImage != nil {
		att := in.FeaturedImage.toClient()
		out.FeaturedImage = &att
	}
	return out
}

func (s *BlogService) Create(ctx context.Context, in PostInput) (dto.PostDTO, error) {
	post, err := s.coord.Create(ctx, in.toClient())
	if err != nil {
		return dto.PostDTO{}, err
	}
	return dto.NewPostDTO(post), nil
}

func (s *BlogService) Update(ctx context.Context, slug string, in PostInput) (dto.PostDTO, error) {
	post, err := s.coord.Update(ctx, slug, in.toClient())
	if err != nil {
		return dto.PostDTO{}, err
	}
	return dto.NewPostDTO(post), nil
}

func (s *BlogService) Delete(ctx context.Context, slug string) error {
	return s.coord.Delete(ctx, slug)
}

func (s *BlogService) Like(ctx context.Context, id int64) (dto.PostDTO, error) {
	post, err := s.coord.Like(ctx, id)
	if err != nil {
		return dto.PostDTO{}, err
	}
	return dto.NewPostDTO(post), nil
}

func (s *BlogService) Bookmark(ctx context.Context, id int64) (dto.PostDTO, error) {
	post, err := s.coord.Bookmark(ctx, id)
	if err != nil {
		return dto.PostDTO{}, err
	}
	return dto.NewPostDTO(post), nil
}

// AttachmentInput 은 미디어 첨부 업로드 입력이다.
type AttachmentInput struct {
	FileName string
	Reader   io.Reader
	Caption  string
	Order    int
}

func (in AttachmentInput) toClient() blogclient.Attachment {
	return blogclient.Attachment{
		FileName: in.FileName,
		Reader:   in.Reader,
		Caption:  in.Caption,
		Order:    in.Order,
	}
}

func (s *BlogService) AddImage(ctx context.Context, blogID int64, in AttachmentInput) (dto.ImageDTO, error) {
	img, err := s.coord.AddImage(ctx, blogID, in.toClient())
	if err != nil {
		return dto.ImageDTO{}, err
	}
	return dto.ImageDTO{ID: img.ID, URL: img.URL, Caption: img.Caption, Order: img.Order}, nil
}

func (s *BlogService) AddVideo(ctx context.Context, blogID int64, in AttachmentInput) (dto.VideoDTO, error) {
	v, err := s.coord.AddVideo(ctx, blogID, in.toClient())
	if err != nil {
		return dto.VideoDTO{}, err
	}
	return dto.VideoDTO{ID: v.ID, URL: v.URL, Caption: v.Caption, Order: v.Order}, nil
}

func (s *BlogService) DeleteImage(ctx context.Context, imageID int64) error {
	return s.coord.DeleteImage(ctx, imageID)
}

func (s *BlogService) DeleteVideo(ctx context.Context, videoID int64) error {
	return s.coord.DeleteVideo(ctx, videoID)
}

// MyPosts 는 내 글 목록이다. 캐노니컬 컬렉션과 별개의 서버측 뷰라서
// 스토어를 거치지 않고 바로 반환한다.
func (s *BlogService) MyPosts(ctx context.Context) ([]dto.PostDTO, error) {
	posts, err := s.client.MyPosts(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPostDTOs(posts), nil
}

// BookmarkedPosts 는 북마크한 글 목록이다. MyPosts 와 같은 성격의 서버측 뷰다.
func (s *BlogService) BookmarkedPosts(ctx context.Context) ([]dto.PostDTO, error) {
	posts, err := s.client.Bookmarked(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPostDTOs(posts), nil
}

func (s *BlogService) Tags(ctx context.Context) ([]dto.TagDTO, error) {
	tags, err := s.client.Tags(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, dto.NewTagDTO(t))
	}
	return out, nil
}

func (s *BlogService) Categories(ctx context.Context) ([]dto.CategoryDTO, error) {
	categories, err := s.client.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.NewCategoryDTO(c))
	}
	return out, nil
}

// Health 는 백엔드 연결 상태를 확인한다.
func (s *BlogService) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}
