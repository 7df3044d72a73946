package borrow

import "time"

type CreateRequestReq struct {
	BookIDs []int64 `json:"book_ids" validate:"required,min=1,dive,gt=0"`
	Note    string  `json:"note" validate:"required"`
}

type UpdateStatusReq struct {
	Status  string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Notes   string `json:"notes"`
	DueDays int    `json:"due_days" validate:"omitempty,gt=0"`
}

type ExtendReq struct {
	NewDueDate time.Time `json:"new_due_date" validate:"required"`
}

type ReturnReq struct {
	Note string `json:"note"`
}
