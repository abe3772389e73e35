package stack

import (
	"reflect"
	"testing"
)

func TestStack_New(t *testing.T) {
	s := New[int]()

	if !s.IsEmpty() {
		t.Error("New() stack should be empty")
	}

	if s.Size() != 0 {
		t.Errorf("New() stack size = %d, want 0", s.Size())
	}
}

func TestStack_NewWithCapacity(t *testing.T) {
	s := NewWithCapacity[string](10)

	if !s.IsEmpty() {
		t.Error("NewWithCapacity() stack should be empty")
	}
}

func TestStack_PushAndPop(t *testing.T) {
	s := New[int]()

	s.Push(1)
	s.Push(2)
	s.Push(3)

	if s.Size() != 3 {
		t.Errorf("Push() stack size = %d, want 3", s.Size())
	}

	for _, want := range []int{3, 2, 1} {
		item, ok := s.Pop()
		if !ok {
			t.Fatal("Pop() reported empty stack")
		}
		if item != want {
			t.Errorf("Pop() = %d, want %d", item, want)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack reported ok")
	}
}

func TestStack_Contains(t *testing.T) {
	s := New[int]()
	s.Push(1, 2, 3)

	if !Contains(s, 2) {
		t.Error("Contains(2) = false, want true")
	}
	if Contains(s, 5) {
		t.Error("Contains(5) = true, want false")
	}
}

func TestStack_Reset(t *testing.T) {
	s := New[int]()
	s.Push(1, 2)
	s.Reset()

	if !s.IsEmpty() {
		t.Error("Reset() stack should be empty")
	}
}

func TestStack_ToSlice(t *testing.T) {
	s := New[int]()
	s.Push(1, 2, 3)

	if got := s.ToSlice(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("ToSlice() = %v, want [1 2 3]", got)
	}
}
