package models

import "testing"

func TestNextStatusHappyPath(t *testing.T) {
	steps := []struct {
		from QuestionStatus
		op   Operation
		want QuestionStatus
	}{
		{StatusPending, OpAssign, StatusAssigned},
		{StatusAssigned, OpAnswer, StatusAnswered},
		{StatusAnswered, OpApprove, StatusApproved},
		{StatusApproved, OpSend, StatusSent},
	}
	for _, st := range steps {
		got, ok := NextStatus(st.from, st.op)
		if !ok || got != st.want {
			t.Fatalf("NextStatus(%s, %s) = %s, %v; want %s", st.from, st.op, got, ok, st.want)
		}
	}
}

func TestNextStatusRejectFromAnyPreSentState(t *testing.T) {
	for _, from := range []QuestionStatus{StatusPending, StatusAssigned, StatusAnswered, StatusApproved} {
		got, ok := NextStatus(from, OpReject)
		if !ok || got != StatusRejected {
			t.Fatalf("reject from %s: got %s, %v", from, got, ok)
		}
	}
}

func TestNextStatusTerminalStates(t *testing.T) {
	ops := []Operation{OpAssign, OpAnswer, OpApprove, OpReject, OpSend}
	for _, from := range []QuestionStatus{StatusSent, StatusRejected} {
		for _, op := range ops {
			if _, ok := NextStatus(from, op); ok {
				t.Fatalf("expected no transition from %s via %s", from, op)
			}
		}
	}
}

func TestNextStatusNeverMovesBackward(t *testing.T) {
	order := map[QuestionStatus]int{
		StatusPending:  0,
		StatusAssigned: 1,
		StatusAnswered: 2,
		StatusApproved: 3,
		StatusSent:     4,
	}
	for from, ops := range transitions {
		for op, to := range ops {
			if op == OpReject {
				continue
			}
			if order[to] <= order[from] {
				t.Fatalf("transition %s via %s moves backward to %s", from, op, to)
			}
		}
	}
}

func TestNextStatusRejectsSkips(t *testing.T) {
	// pending cannot be approved or sent directly
	if _, ok := NextStatus(StatusPending, OpApprove); ok {
		t.Fatalf("pending must not be approvable")
	}
	if _, ok := NextStatus(StatusPending, OpSend); ok {
		t.Fatalf("pending must not be sendable")
	}
	if _, ok := NextStatus(StatusAssigned, OpAssign); ok {
		t.Fatalf("assigned must not be assignable again")
	}
}
