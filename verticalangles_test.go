package velodyne

import "testing"

func TestVerticalAngleVLP16_MatchesFiringOrderTable(t *testing.T) {
	want := [vlp16Channels]float32{-15, 1, -13, 3, -11, 5, -9, 7, -7, 9, -5, 11, -3, 13, -1, 15}
	if VerticalAngleVLP16 != want {
		t.Errorf("VerticalAngleVLP16 = %v, want %v", VerticalAngleVLP16, want)
	}
}

func TestLoadVerticalAngleTable_DefaultMatchesBuiltin(t *testing.T) {
	table, err := LoadVerticalAngleTable("vlp16_default", vlp16Channels)
	if err != nil {
		t.Fatalf("LoadVerticalAngleTable: %v", err)
	}
	for c := 0; c < vlp16Channels; c++ {
		if table[c] != VerticalAngleVLP16[c] {
			t.Errorf("channel %d = %v, want %v", c, table[c], VerticalAngleVLP16[c])
		}
	}
}

func TestLoadVerticalAngleTable_UnknownName(t *testing.T) {
	if _, err := LoadVerticalAngleTable("does-not-exist", vlp16Channels); err == nil {
		t.Fatal("expected error for unknown table name")
	}
}
