package seatmap

import (
	"slices"
	"testing"
)

func TestSplitLabel(t *testing.T) {
	row, col, ok := SplitLabel("A12")
	if !ok || row != "A" || col != 12 {
		t.Fatalf("expected (A, 12, true), got (%s, %d, %v)", row, col, ok)
	}

	row, col, ok = SplitLabel("AB3")
	if !ok || row != "AB" || col != 3 {
		t.Fatalf("expected (AB, 3, true), got (%s, %d, %v)", row, col, ok)
	}

	for _, bad := range []string{"", "12", "A", "A0X", "1A"} {
		if _, _, ok := SplitLabel(bad); ok {
			t.Fatalf("expected %q to fail parsing", bad)
		}
	}
}

func TestCompareLabels_NumericNotLexicographic(t *testing.T) {
	if CompareLabels("A2", "A10") >= 0 {
		t.Fatal("expected A2 to sort before A10")
	}
	if CompareLabels("A10", "A11") >= 0 {
		t.Fatal("expected A10 to sort before A11")
	}
}

func TestCompareRows_SpreadsheetOrder(t *testing.T) {
	if CompareRows("Z", "AA") >= 0 {
		t.Fatal("expected Z to sort before AA")
	}
	if CompareRows("AA", "AB") >= 0 {
		t.Fatal("expected AA to sort before AB")
	}
	if CompareRows("B", "A") <= 0 {
		t.Fatal("expected B to sort after A")
	}
}

func TestCompareLabels_SortsFullSet(t *testing.T) {
	labels := []string{"AA1", "A10", "B1", "A2", "Z5", "A1"}
	slices.SortFunc(labels, CompareLabels)

	want := []string{"A1", "A2", "A10", "B1", "Z5", "AA1"}
	if !slices.Equal(labels, want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
}

func TestCompareLabels_MalformedSortLast(t *testing.T) {
	labels := []string{"??", "A1"}
	slices.SortFunc(labels, CompareLabels)
	if labels[0] != "A1" {
		t.Fatalf("expected parseable labels first, got %v", labels)
	}
}

func TestRowLabelRoundTrip(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
	}
	for idx, want := range cases {
		if got := RowLabel(idx); got != want {
			t.Fatalf("RowLabel(%d): expected %s, got %s", idx, want, got)
		}
		if got := RowIndex(want); got != idx {
			t.Fatalf("RowIndex(%s): expected %d, got %d", want, idx, got)
		}
	}

	if RowIndex("a1") != -1 {
		t.Fatal("expected invalid row to return -1")
	}
}
