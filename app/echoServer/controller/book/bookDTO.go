package book

type CreateBookReq struct {
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	CategoryID *int64 `json:"category_id" validate:"omitempty,gt=0"`
	Copies     int64  `json:"copies" validate:"gte=0"`
}

type UpdateBookReq struct {
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	CategoryID *int64 `json:"category_id" validate:"omitempty,gt=0"`
	IsActive   *bool  `json:"is_active"`
}

type AddCopiesReq struct {
	Count int64 `json:"count" validate:"required,gt=0"`
}
