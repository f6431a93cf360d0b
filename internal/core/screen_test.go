package core

import (
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	if s.String() != "    \n    " {
		t.Errorf("String() = %q, want blank 4x2", s.String())
	}

	neg := NewScreen(-1, -3)
	if neg.Width() != 0 || neg.Height() != 0 {
		t.Errorf("negative size = %dx%d, want 0x0", neg.Width(), neg.Height())
	}
}

func TestScreenSetAndGet(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(1, 1, 'x')
	s.SetColored(2, 0, 'y', ColorRed)

	if s.Get(1, 1) != 'x' {
		t.Errorf("Get(1,1) = %q, want 'x'", s.Get(1, 1))
	}
	if c := s.GetCell(2, 0); c.Rune != 'y' || c.Color != ColorRed {
		t.Errorf("GetCell(2,0) = %+v, want red 'y'", c)
	}

	// Out of bounds writes are ignored, reads return blanks.
	s.Set(-1, 0, 'z')
	s.Set(3, 0, 'z')
	if s.Get(5, 5) != ' ' {
		t.Errorf("out of bounds Get = %q, want ' '", s.Get(5, 5))
	}
}

func TestScreenResizeAndClear(t *testing.T) {
	s := NewScreen(2, 2)
	s.Set(0, 0, 'a')

	s.Resize(2, 2)
	if s.Get(0, 0) != 'a' {
		t.Error("same-size Resize discarded content")
	}

	s.Resize(3, 1)
	if s.Width() != 3 || s.Height() != 1 {
		t.Fatalf("size = %dx%d, want 3x1", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize kept stale content")
	}

	s.SetColored(1, 0, 'b', ColorBlue)
	s.Clear()
	if c := s.GetCell(1, 0); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(2, 0, "héllo", ColorGreen)

	if s.String() != "  hél" {
		t.Errorf("String() = %q, want clipped text", s.String())
	}
	if s.GetCell(3, 0).Color != ColorGreen {
		t.Error("text color not applied")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	want := "┌──┐\n│  │\n└──┘"
	if s.String() != want {
		t.Errorf("String() =\n%s\nwant\n%s", s.String(), want)
	}

	small := NewScreen(2, 2)
	small.DrawBox(NewRect(0, 0, 1, 1), ColorGray)
	if small.Get(0, 0) != ' ' {
		t.Error("degenerate box was drawn")
	}
}
