package model

import "testing"

func TestRequestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		ok       bool
	}{
		{RequestWaiting, RequestApproved, true},
		{RequestWaiting, RequestRejected, true},
		{RequestWaiting, RequestWaiting, false},
		{RequestApproved, RequestRejected, false},
		{RequestApproved, RequestApproved, false},
		{RequestRejected, RequestApproved, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	if RequestWaiting.Terminal() {
		t.Error("Waiting must not be terminal")
	}
	if !RequestApproved.Terminal() || !RequestRejected.Terminal() {
		t.Error("Approved and Rejected must be terminal")
	}
}

func TestDetailStatusLifecycle(t *testing.T) {
	if DetailPending.CanExtend() || DetailPending.CanReturn() {
		t.Error("pending detail has no borrow lifecycle yet")
	}
	if !DetailBorrowing.CanExtend() || !DetailBorrowing.CanReturn() {
		t.Error("borrowing detail can be extended and returned")
	}
	if DetailExtended.CanExtend() {
		t.Error("a detail may be extended at most once")
	}
	if !DetailExtended.CanReturn() {
		t.Error("extended detail can still be returned")
	}
	if DetailReturned.CanExtend() || DetailReturned.CanReturn() {
		t.Error("returned is terminal")
	}
}
