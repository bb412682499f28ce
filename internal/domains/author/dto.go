package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UpdateAuthorRequest - PUT /v1/authors/:id
// All fields optional for partial updates.
type UpdateAuthorRequest struct {
	Name        *string      `json:"name,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	SocialLinks *SocialLinks `json:"social_links,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(2, 255)),
		),
		validation.Field(&r.Bio,
			validation.When(r.Bio != nil, validation.Length(0, 5000)),
		),
		validation.Field(&r.Avatar,
			validation.When(r.Avatar != nil && *r.Avatar != "", is.URL.Error("avatar must be a URL")),
		),
	)
}

// ApplyTo applies a partial update to an existing profile.
func (r *UpdateAuthorRequest) ApplyTo(a *Author) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Bio != nil {
		a.Bio = *r.Bio
	}
	if r.Avatar != nil {
		a.Avatar = *r.Avatar
	}
	if r.SocialLinks != nil {
		a.SocialLinks = r.SocialLinks
	}
}
