package post

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreatePostRequest - POST /v1/posts
// Slug is optional: when the author hand-edited it in the editor the client
// sends it and the service sanitizes and probes it as-is; when empty the
// slug is derived from the title.
type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required"`
	Slug        string   `json:"slug,omitempty"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"cover_image"`
	ReadingTime int      `json:"reading_time"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	Publish     bool     `json:"publish"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Excerpt, validation.Length(0, 1000)),
		validation.Field(&r.CoverImage,
			validation.When(r.CoverImage != "", is.URL.Error("cover image must be a URL")),
		),
		validation.Field(&r.ReadingTime, validation.Min(0), validation.Max(600)),
	)
}

// UpdatePostRequest - PUT /v1/posts/:id
// Nil fields are left unchanged. When Title changes and Slug is nil the
// slug is regenerated; a non-nil Slug is treated as hand-edited and kept
// stable across later title edits.
type UpdatePostRequest struct {
	Title       *string   `json:"title,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Excerpt     *string   `json:"excerpt,omitempty"`
	Content     *string   `json:"content,omitempty"`
	CoverImage  *string   `json:"cover_image,omitempty"`
	ReadingTime *int      `json:"reading_time,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	Publish     *bool     `json:"publish,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 500)),
		),
		validation.Field(&r.Excerpt,
			validation.When(r.Excerpt != nil, validation.Length(0, 1000)),
		),
		validation.Field(&r.CoverImage,
			validation.When(r.CoverImage != nil && *r.CoverImage != "", is.URL.Error("cover image must be a URL")),
		),
	)
}

// UpdateReadingProgressRequest - PUT /v1/posts/:id/progress
type UpdateReadingProgressRequest struct {
	ProgressPercentage int `json:"progress_percentage"`
}

func (r UpdateReadingProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProgressPercentage, validation.Min(0), validation.Max(100)),
	)
}

// PostResponse is the wire shape of a post.
type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"cover_image"`
	AuthorID    string     `json:"author_id"`
	PublishedAt *time.Time `json:"published_at"`
	ReadingTime int        `json:"reading_time"`
	Tags        []string   `json:"tags"`
	Featured    bool       `json:"featured"`
	ViewCount   int        `json:"view_count"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Post) ToResponse() *PostResponse {
	return &PostResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		CoverImage:  p.CoverImage,
		AuthorID:    p.AuthorID.String(),
		PublishedAt: p.PublishedAt,
		ReadingTime: p.ReadingTime,
		Tags:        p.Tags,
		Featured:    p.Featured,
		ViewCount:   p.ViewCount,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToResponseList(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, *posts[i].ToResponse())
	}
	return out
}
