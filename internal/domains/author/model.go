package author

import (
	"time"

	"github.com/google/uuid"
)

// SocialLinks is stored as a jsonb column; every entry is optional.
type SocialLinks struct {
	Twitter  *string `json:"twitter,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Website  *string `json:"website,omitempty"`
}

// Author is the public profile of a registered identity. Its id always
// equals the owning user's id; the pair is created together at registration.
type Author struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Bio         string       `json:"bio" db:"bio"`
	Email       string       `json:"email" db:"email"`
	Avatar      string       `json:"avatar" db:"avatar"`
	SocialLinks *SocialLinks `json:"social_links,omitempty" db:"social_links"`
	Verified    bool         `json:"verified" db:"verified"`
	LastLogin   *time.Time   `json:"last_login,omitempty" db:"last_login"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// Statistics is the author_statistics view projection.
type Statistics struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Verified        bool       `json:"verified"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	TotalPosts      int        `json:"total_posts"`
	PublishedPosts  int        `json:"published_posts"`
	DraftPosts      int        `json:"draft_posts"`
	TotalViews      int64      `json:"total_views"`
	AvgViewsPerPost float64    `json:"avg_views_per_post"`
}
