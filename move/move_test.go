package move

import (
	"testing"

	"github.com/matryer/is"
)

func TestFormat(t *testing.T) {
	is := is.New(t)
	is.Equal(FromCoord(1, 1, 7).Format(7), "A1")
	is.Equal(FromCoord(3, 5, 7).Format(7), "E3")
	is.Equal(FromCoord(7, 7, 7).Format(7), "G7")
	is.Equal(Pass.Format(7), "PASS")
	// column letters skip I
	is.Equal(FromCoord(2, 9, 19).Format(19), "J2")
	is.Equal(FromCoord(10, 10, 19).Format(19), "K10")
}

func TestParse(t *testing.T) {
	is := is.New(t)
	p, err := Parse("a1", 7)
	is.NoErr(err)
	is.Equal(p, FromCoord(1, 1, 7))

	p, err = Parse("E3", 7)
	is.NoErr(err)
	is.Equal(p, FromCoord(3, 5, 7))

	p, err = Parse("PASS", 7)
	is.NoErr(err)
	is.Equal(p, Pass)

	// j is the ninth column
	p, err = Parse("j2", 19)
	is.NoErr(err)
	is.Equal(p, FromCoord(2, 9, 19))
}

func TestParseErrors(t *testing.T) {
	for _, bad := range []string{"", "a", "i3", "a0", "1a", "zz"} {
		_, err := Parse(bad, 7)
		if err == nil {
			t.Errorf("expected error parsing %q", bad)
		}
	}
	// in-alphabet but off-board
	_, err := Parse("h1", 7)
	if err == nil {
		t.Error("expected out of range error for h1 on a 7x7 board")
	}
	_, err = Parse("a8", 7)
	if err == nil {
		t.Error("expected out of range error for a8 on a 7x7 board")
	}
}

func TestRoundTrip(t *testing.T) {
	for size := 2; size <= MaxBoardSize; size += 6 {
		for row := 1; row <= size; row++ {
			for col := 1; col <= size; col++ {
				p := FromCoord(row, col, size)
				q, err := Parse(p.Format(size), size)
				if err != nil {
					t.Fatalf("size %d (%d,%d): %v", size, row, col, err)
				}
				if q != p {
					t.Fatalf("size %d (%d,%d): got %v want %v", size, row, col, q, p)
				}
			}
		}
	}
}
