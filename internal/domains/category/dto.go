package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCategoryRequest - POST /v1/categories (admin)
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Color, validation.Length(0, 20)),
	)
}
