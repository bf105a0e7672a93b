package dto

type CreateBlogDTO struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

type UpdateBlogDTO struct {
	Title    *string `json:"title,omitempty" binding:"omitempty,min=1"`
	Content  *string `json:"content,omitempty" binding:"omitempty,min=1"`
	Category *string `json:"category,omitempty"`
	Image    *string `json:"image,omitempty"`
}
