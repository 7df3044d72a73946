// model/request.go
package model

import "time"

type RequestStatus string

const (
	RequestWaiting  RequestStatus = "WAITING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// CanTransitionTo is the single place that knows the request state machine.
// Waiting may move to Approved or Rejected; both are terminal.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	if s != RequestWaiting {
		return false
	}
	return next == RequestApproved || next == RequestRejected
}

func (s RequestStatus) Terminal() bool { return s == RequestApproved || s == RequestRejected }

type DetailStatus string

const (
	// DetailPending is the zero value: the parent request has not been
	// approved yet, so the line item has no borrow lifecycle of its own.
	DetailPending   DetailStatus = ""
	DetailBorrowing DetailStatus = "BORROWING"
	DetailExtended  DetailStatus = "EXTENDED"
	DetailReturned  DetailStatus = "RETURNED"
)

// CanExtend: only a Borrowing detail may be extended, and only once.
func (s DetailStatus) CanExtend() bool { return s == DetailBorrowing }

// CanReturn: anything out on loan can come back.
func (s DetailStatus) CanReturn() bool { return s == DetailBorrowing || s == DetailExtended }

type BorrowingRequest struct {
	ID           int64                    `json:"id"`
	RequestorID  int64                    `json:"requestor_id"`
	RequestDate  time.Time                `json:"request_date"`
	Status       RequestStatus            `json:"status"`
	ApproverID   *int64                   `json:"approver_id,omitempty"`
	ApprovalDate *time.Time               `json:"approval_date,omitempty"`
	Notes        *string                  `json:"notes,omitempty"`
	Details      []BorrowingRequestDetail `json:"details,omitempty"`
}

type BorrowingRequestDetail struct {
	ID            int64        `json:"id"`
	RequestID     int64        `json:"request_id"`
	BookID        int64        `json:"book_id"`
	Status        DetailStatus `json:"status"`
	DueDate       *time.Time   `json:"due_date,omitempty"`
	ExtensionDate *time.Time   `json:"extension_date,omitempty"`
	ReturnDate    *time.Time   `json:"return_date,omitempty"`
}
