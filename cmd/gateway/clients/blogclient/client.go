package blogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"blog-canvas/cmd/gateway/apierr"
	"blog-canvas/cmd/gateway/httpclient"
	"blog-canvas/models"
)

// Client 는 블로그 REST 백엔드(/blogs, /comments)를 호출하는 얇은 클라이언트다.
//
// - 요청 구성과 응답 정규화만 담당하고, 자체 상태는 전혀 갖지 않는다.
// - 인증 토큰은 httpclient.TokenProvider 를 통해 요청마다 주입된다.
// - 캐노니컬 컬렉션 반영 여부는 상위의 뮤테이션 코디네이터가 결정한다.
type Client struct {
	base *httpclient.BaseClient
}

func New(baseURL string, tokens httpclient.TokenProvider) *Client {
	return &Client{
		base: httpclient.NewBaseClient(baseURL).WithTokens(tokens),
	}
}

// NewWithHTTPClient 는 타임아웃 등을 조정한 http.Client 를 쓰는 클라이언트를 생성한다.
func NewWithHTTPClient(httpClient *http.Client, baseURL string, tokens httpclient.TokenProvider) *Client {
	return &Client{
		base: httpclient.NewBaseClientWithClient(httpClient, baseURL).WithTokens(tokens),
	}
}

// do 는 요청을 실행하고, 서버에 도달하지 못한 실패를 apierr.NetworkError 로 감싼다.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, &apierr.NetworkError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	return resp, nil
}

func errorFromResponse(op string, resp *http.Response) error {
	return apierr.FromResponse("blog-api "+op, resp)
}

// -------------------- Posts --------------------

// ListParams 는 목록 조회 파라미터다. 비어 있는 키는 쿼리에서 생략된다.
type ListParams struct {
	Search   string
	Category int64  // category id; 0 이면 생략
	Tags     string // tags__name
	Ordering string // field 또는 -field
	Page     int
}

type ListResult struct {
	Posts []models.Post
	Total int
}

// List 는 GET /blogs/ 를 호출한다. 페이지네이션 envelope 과 bare array 를
// 모두 허용하고 같은 형태로 정규화해서 반환한다.
func (c *Client) List(ctx context.Context, params ListParams) (ListResult, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Category > 0 {
		q.Set("category", strconv.FormatInt(params.Category, 10))
	}
	if params.Tags != "" {
		q.Set("tags__name", params.Tags)
	}
	if params.Ordering != "" {
		q.Set("ordering", params.Ordering)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/blogs/", q, nil)
	if err != nil {
		return ListResult{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return ListResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ListResult{}, errorFromResponse("List", resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ListResult{}, err
	}
	posts, total, err := decodePostList(data)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Posts: posts, Total: total}, nil
}

// Get 은 slug 로 단일 포스트를 조회한다. 없으면 ErrNotFound 를 반환한다.
func (c *Client) Get(ctx context.Context, slug string) (models.Post, error) {
	relPath := path.Join("/blogs", slug) + "/"
	req, err := c.base.NewRequest(ctx, http.MethodGet, relPath, nil, nil)
	if err != nil {
		return models.Post{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return models.Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Post{}, errorFromResponse("Get", resp)
	}

	var w wirePost
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return models.Post{}, err
	}
	return w.normalize(), nil
}

// Attachment 는 multipart 업로드 파일 하나를 표현한다.
type Attachment struct {
	FileName string
	Reader   io.Reader
	Caption  string
	Order    int
}

// PostInput 은 생성/수정 공통 입력이다. 파일 첨부 때문에 multipart 로 전송된다.
type PostInput struct {
	Title         string
	Content       string
	CategoryID    int64
	Tags          []string
	LayoutType    string
	Published     *bool
	FeaturedImage *Attachment
}

func buildPostForm(in PostInput) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField("title", in.Title); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("content", in.Content); err != nil {
		return nil, "", err
	}
	if in.CategoryID > 0 {
		if err := w.WriteField("category", strconv.FormatInt(in.CategoryID, 10)); err != nil {
			return nil, "", err
		}
	}
	for _, tag := range in.Tags {
		if err := w.WriteField("tags", tag); err != nil {
			return nil, "", err
		}
	}
	if in.LayoutType != "" {
		if err := w.WriteField("layout_type", in.LayoutType); err != nil {
			return nil, "", err
		}
	}
	if in.Published != nil {
		if err := w.WriteField("is_published", strconv.FormatBool(*in.Published)); err != nil {
			return nil, "", err
		}
	}
	if in.FeaturedImage != nil {
		fw, err := w.CreateFormFile("featured_image", in.FeaturedImage.FileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(fw, in.FeaturedImage.Reader); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// Create 는 POST /blogs/ 를 호출한다. 서버가 id/slug 를 채운 포스트를 반환한다.
// 400 이면 필드별 메시지가 담긴 ValidationError 를 반환한다.
func (c *Client) Create(ctx context.Context, in PostInput) (models.Post, error) {
	body, contentType, err := buildPostForm(in)
	if err != nil {
		return models.Post{}, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/blogs/", nil, body)
	if err != nil {
		return models.Post{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return models.Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return models.Post{}, errorFromResponse("Create", resp)
	}

	var w wirePost
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return models.Post{}, err
	}
	return w.normalize(), nil
}

// Update 는 PUT /blogs/{slug}/ 를 호출한다. 작성자 권한은 서버가 검사하고
// 403 은 ErrForbidden 으로 올라온다.
func (c *Client) Update(ctx context.Context, slug string, in PostInput) (models.Post, error) {
	body, contentType, err := buildPostForm(in)
	if err != nil {
		return models.Post{}, err
	}

	relPath := path.Join("/blogs", slug) + "/"
	req, err := c.base.NewRequest(ctx, http.MethodPut, relPath, nil, body)
	if err != nil {
		return models.Post{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return models.Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Post{}, errorFromResponse("Update", resp)
	}

	var w wirePost
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return models.Post{}, err
	}
	return w.normalize(), nil
}

// Delete 는 DELETE /blogs/{slug}/ 를 호출한다.
func (c *Client) Delete(ctx context.Context, slug string) error {
	relPath := path.Join("/blogs", slug) + "/"
	req, err := c.base.NewRequest(ctx, http.MethodDelete, relPath, nil, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return errorFromResponse("Delete", resp)
	}
}

// LikeResult 는 POST /blogs/{id}/like/ 의 응답이다.
// 서버 카운트가 단일 진실이므로 호출자는 이 값으로 로컬 상태를 덮어써야 한다.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// Like 는 좋아요 토글 액션을 호출한다. 바디 없는 POST 이고, 같은 요청을
// 다시 보내면 서버에서 토글되어 원래 값으로 돌아온다.
func (c *Client) Like(ctx context.Context, id int64) (LikeResult, error) {
	relPath := path.Join("/blogs", strconv.FormatInt(id, 10), "like") + "/"
	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, nil, nil)
	if err != nil {
		return LikeResult{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return LikeResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return LikeResult{}, errorFromResponse("Like", resp)
	}

	var out LikeResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return LikeResult{}, err
	}
	return out, nil
}

// BookmarkResult 는 POST /blogs/{id}/bookmark/ 의 응답이다.
type BookmarkResult struct {
	Bookmarked bool `json:"bookmarked"`
}

// Bookmark 는 북마크 토글 액션을 호출한다.
func (c *Client) Bookmark(ctx context.Context, id int64) (BookmarkResult, error) {
	relPath := path.Join("/blogs", strconv.FormatInt(id, 10), "bookmark") + "/"
	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, nil, nil)
	if err != nil {
		return BookmarkResult{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return BookmarkResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BookmarkResult{}, errorFromResponse("Bookmark", resp)
	}

	var out BookmarkResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return BookmarkResult{}, err
	}
	return out, nil
}

// MyPosts 는 GET /blogs/my-blogs/ 를 호출한다. 인증이 필요하다.
func (c *Client) MyPosts(ctx context.Context) ([]models.Post, error) {
	return c.listPath(ctx, "/blogs/my-blogs/", "MyPosts")
}

// Bookmarked 는 GET /blogs/bookmarked/ 를 호출한다. 인증이 필요하다.
func (c *Client) Bookmarked(ctx context.Context) ([]models.Post, error) {
	return c.listPath(ctx, "/blogs/bookmarked/", "Bookmarked")
}

func (c *Client) listPath(ctx context.Context, relPath, op string) ([]models.Post, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, relPath, nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(op, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	posts, _, err := decodePostList(data)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Tags 는 GET /blogs/tags/ 를 호출한다.
func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/blogs/tags/", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse("Tags", resp)
	}

	var out []models.Tag
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories 는 GET /blogs/categories/ 를 호출한다.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/blogs/categories/", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse("Categories", resp)
	}

	var out []models.Category
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// -------------------- Media --------------------

func buildAttachmentForm(fieldName string, att Attachment) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fw, err := w.CreateFormFile(fieldName, att.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, att.Reader); err != nil {
		return nil, "", err
	}
	if att.Caption != "" {
		if err := w.WriteField("caption", att.Caption); err != nil {
			return nil, "", err
		}
	}
	if err := w.WriteField("order", strconv.Itoa(att.Order)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// AddImage 는 POST /blogs/{id}/images/ 로 이미지를 첨부한다.
func (c *Client) AddImage(ctx context.Context, blogID int64, att Attachment) (models.Image, error) {
	body, contentType, err := buildAttachmentForm("image", att)
	if err != nil {
		return models.Image{}, err
	}

	relPath := path.Join("/blogs", strconv.FormatInt(blogID, 10), "images") + "/"
	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, nil, body)
	if err != nil {
		return models.Image{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return models.Image{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return models.Image{}, errorFromResponse("AddImage", resp)
	}

	var out models.Image
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Image{}, err
	}
	return out, nil
}

// AddVideo 는 POST /blogs/{id}/videos/ 로 비디오를 첨부한다.
func (c *Client) AddVideo(ctx context.Context, blogID int64, att Attachment) (models.Video, error) {
	body, contentType, err := buildAttachmentForm("video", att)
	if err != nil {
		return models.Video{}, err
	}

	relPath := path.Join("/blogs", strconv.FormatInt(blogID, 10), "videos") + "/"
	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, nil, body)
	if err != nil {
		return models.Video{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return models.Video{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return models.Video{}, errorFromResponse("AddVideo", resp)
	}

	var out models.Video
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Video{}, err
	}
	return out, nil
}

// DeleteImage 는 DELETE /blogs/images/{id}/ 를 호출한다.
func (c *Client) DeleteImage(ctx context.Context, imageID int64) error {
	return c.deletePath(ctx, path.Join("/blogs/images", strconv.FormatInt(imageID, 10))+"/", "DeleteImage")
}

// DeleteVideo 는 DELETE /blogs/videos/{id}/ 를 호출한다.
func (c *Client) DeleteVideo(ctx context.Context, videoID int64) error {
	return c.deletePath(ctx, path.Join("/blogs/videos", strconv.FormatInt(videoID, 10))+"/", "DeleteVideo")
}

func (c *Client) deletePath(ctx context.Context, relPath, op string) error {
	req, err := c.base.NewRequest(ctx, http.MethodDelete, relPath, nil, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return errorFromResponse(op, resp)
	}
}

// -------------------- Comments --------------------

type commentBody struct {
	Content string `json:"content"`
}

// ListComments 는 GET /comments/blog/{blogId}/ 로 포스트의 댓글 트리를 통째로 가져온다.
func (c *Client) ListComments(ctx context.Context, blogID int64) ([]models.Comment, error) {
	relPath := path.Join("/comments/blog", strconv.FormatInt(blogID, 10)) + "/"
	req, err := c.base.NewRequest(ctx, http.MethodGet, relPath, nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse("ListComments", resp)
	}

	var out []models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment 는 POST /comments/blog/{blogId}/ 로 댓글을 작성한다.
func (c *Client) CreateComment(ctx context.Context, blogID int64, content string) (models.Comment, error) {
	relPath := path.Join("/comments/blog", strconv.FormatInt(blogID, 10)) + "/"
	return c.postComment(ctx, relPath, content, "CreateComment")
}

// ReplyComment 는 POST /comments/{id}/reply/ 로 답글을 작성한다.
func (c *Client) ReplyComment(ctx context.Context, commentID int64, content string) (models.Comment, error) {
	relPath := path.Join("/comments", strconv.FormatInt(commentID, 10), "reply") + "/"
	return c.postComment(ctx, relPath, content, "ReplyComment")
}

func (c *Client) postComment(ctx context.Context, relPath, content, op string) (models.Comment, error) {
	buf, err := json.Marshal(commentBody{Content: content})
	if err != nil {
		return models.Comment{}, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, nil, bytes.NewReader(buf))
	if err != nil {
		return models.Comment{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return models.Comment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return models.Comment{}, errorFromResponse(op, resp)
	}

	var out models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Comment{}, err
	}
	return out, nil
}

// UpdateComment 는 PUT /comments/{id}/ 로 댓글 내용을 수정한다.
func (c *Client) UpdateComment(ctx context.Context, commentID int64, content string) (models.Comment, error) {
	buf, err := json.Marshal(commentBody{Content: content})
	if err != nil {
		return models.Comment{}, err
	}

	relPath := path.Join("/comments", strconv.FormatInt(commentID, 10)) + "/"
	req, err := c.base.NewRequest(ctx, http.MethodPut, relPath, nil, bytes.NewReader(buf))
	if err != nil {
		return models.Comment{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return models.Comment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Comment{}, errorFromResponse("UpdateComment", resp)
	}

	var out models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Comment{}, err
	}
	return out, nil
}

// DeleteComment 는 DELETE /comments/{id}/ 를 호출한다.
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	return c.deletePath(ctx, path.Join("/comments", strconv.FormatInt(commentID, 10))+"/", "DeleteComment")
}

// Health 는 목록 엔드포인트를 1페이지로 찔러 백엔드 연결 상태를 확인한다.
func (c *Client) Health(ctx context.Context) error {
	q := url.Values{}
	q.Set("page", "1")
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/blogs/", q, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("blog-api Health: status=%d", resp.StatusCode)
	}
	return nil
}
