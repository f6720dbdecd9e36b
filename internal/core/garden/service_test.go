package garden

import (
	"testing"
)

func TestCategoryByID(t *testing.T) {
	s := NewService()

	c, err := s.CategoryByID("desbrozadoras")
	if err != nil {
		t.Fatalf("CategoryByID: %v", err)
	}
	if c.Name != "Desbrozadoras" {
		t.Errorf("Name = %q", c.Name)
	}

	if _, err := s.CategoryByID("no-existe"); err == nil {
		t.Error("CategoryByID on unknown id returned nil error")
	}
}

func TestConversationSequence(t *testing.T) {
	s := NewService()

	state, first, err := s.StartConversation("desbrozadoras")
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	if first.ID != "power-type" {
		t.Errorf("first specification = %s, want power-type", first.ID)
	}
	if state.CurrentCategory != "desbrozadoras" || state.CurrentSpecification != "power-type" {
		t.Errorf("state = %+v", state)
	}

	next, done, err := s.Advance(state, "batería")
	if err != nil || done {
		t.Fatalf("Advance 1: next=%v done=%v err=%v", next, done, err)
	}
	if next.ID != "cutting-width" {
		t.Errorf("second specification = %s, want cutting-width", next.ID)
	}
	if state.AnsweredSpecifications["power-type"] != "batería" {
		t.Errorf("answer not recorded: %+v", state.AnsweredSpecifications)
	}

	next, done, err = s.Advance(state, "30")
	if err != nil || done {
		t.Fatalf("Advance 2: next=%v done=%v err=%v", next, done, err)
	}
	if next.ID != "line-type" {
		t.Errorf("third specification = %s, want line-type", next.ID)
	}

	next, done, err = s.Advance(state, "hilo")
	if err != nil {
		t.Fatalf("Advance 3: %v", err)
	}
	if !done || next != nil {
		t.Errorf("final Advance: next=%v done=%v, want nil/true", next, done)
	}

	// sequence completion resets the state
	if state.CurrentCategory != "" || state.CurrentSpecification != "" {
		t.Errorf("state not reset: %+v", state)
	}
	if len(state.AnsweredSpecifications) != 0 {
		t.Errorf("answers not cleared: %+v", state.AnsweredSpecifications)
	}
}

func TestAdvanceRejectsInvalidState(t *testing.T) {
	s := NewService()

	if _, _, err := s.Advance(nil, "x"); err == nil {
		t.Error("Advance(nil) returned nil error")
	}

	state := &ConversationState{CurrentCategory: "desbrozadoras", CurrentSpecification: "no-existe"}
	if _, _, err := s.Advance(state, "x"); err == nil {
		t.Error("Advance with unknown specification returned nil error")
	}
}

func TestStartConversationUnknownCategory(t *testing.T) {
	s := NewService()
	if _, _, err := s.StartConversation("no-existe"); err == nil {
		t.Error("StartConversation on unknown category returned nil error")
	}
}
