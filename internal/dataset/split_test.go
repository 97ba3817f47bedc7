package dataset

import "testing"

func makeRecords(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{Make: "toyota", Year: float64(2000 + i), Price: float64(i)}
	}
	return records
}

func TestSplitSizes(t *testing.T) {
	train, test := Split(makeRecords(100), 0.2, 42)
	if len(train) != 80 || len(test) != 20 {
		t.Fatalf("split sizes: train=%d test=%d", len(train), len(test))
	}
}

func TestSplitDeterministic(t *testing.T) {
	a, _ := Split(makeRecords(50), 0.2, 7)
	b, _ := Split(makeRecords(50), 0.2, 7)
	for i := range a {
		if a[i].Year != b[i].Year {
			t.Fatalf("same seed gave different order at %d", i)
		}
	}
}

func TestSplitDefaultHoldout(t *testing.T) {
	train, test := Split(makeRecords(10), -1, 1)
	if len(train) != 8 || len(test) != 2 {
		t.Fatalf("default holdout: train=%d test=%d", len(train), len(test))
	}
}

func TestSplitSingleRow(t *testing.T) {
	train, test := Split(makeRecords(1), 0.2, 1)
	if len(train) != 1 || len(test) != 0 {
		t.Fatalf("single row: train=%d test=%d", len(train), len(test))
	}
}

func TestSplitDoesNotMutateInput(t *testing.T) {
	records := makeRecords(20)
	first := records[0].Year
	Split(records, 0.5, 3)
	if records[0].Year != first {
		t.Fatal("input slice was mutated")
	}
}
