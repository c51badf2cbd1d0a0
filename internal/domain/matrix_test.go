package domain

import (
	"errors"
	"testing"
)

func TestMatrixFromRowsAndAt(t *testing.T) {
	m, err := MatrixFromRows([][]float64{
		{0, 1.5},
		{2.5, 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Size() != 2 {
		t.Fatalf("size = %d, want 2", m.Size())
	}

	v, err := m.At(1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2.5 {
		t.Errorf("At(1,0) = %v, want 2.5", v)
	}

	if _, err := m.At(2, 0); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("At(2,0) err = %v, want ErrDataIntegrity", err)
	}
	if _, err := m.At(0, -1); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("At(0,-1) err = %v, want ErrDataIntegrity", err)
	}
}

func TestMatrixFromRowsRejectsRagged(t *testing.T) {
	if _, err := MatrixFromRows([][]float64{{0, 1}, {1}}); err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestMatrixMapLeavesSourceUntouched(t *testing.T) {
	m, _ := MatrixFromRows([][]float64{{0, 2}, {4, 0}})
	doubled := m.Map(func(v float64) float64 { return v * 2 })

	if v, _ := doubled.At(1, 0); v != 8 {
		t.Errorf("doubled At(1,0) = %v, want 8", v)
	}
	if v, _ := m.At(1, 0); v != 4 {
		t.Errorf("source At(1,0) = %v, want 4", v)
	}
}

func TestParseOrderTypeCaseSensitive(t *testing.T) {
	got, err := ParseOrderType("DEPOT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != OrderTypeDepot {
		t.Errorf("ParseOrderType(DEPOT) = %q, want %q", got, OrderTypeDepot)
	}

	if _, err := ParseOrderType("Warehouse"); err == nil {
		t.Error("expected error for unknown order type")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	var err error = &DataIntegrityError{VehicleIndex: 3, Reason: "location 9 not in order table"}
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("DataIntegrityError does not match ErrDataIntegrity")
	}

	err = &ParseError{Value: "bogus", Layout: "2006-01-02T15:04:05", Err: errors.New("boom")}
	if !errors.Is(err, ErrParse) {
		t.Errorf("ParseError does not match ErrParse")
	}
}
