package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cars.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

const validCSV = `make,body,fuel,transmission,year,mileage,price
toyota,suv,petrol,manual,2018,40000,815000
honda,sedan,diesel,automatic,2015,90000,540000
ford,hatchback,petrol,manual,2020,15000,700000
`

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(writeCSV(t, validCSV))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records=%d, want 3", len(records))
	}
	r := records[0]
	if r.Make != "toyota" || r.Year != 2018 || r.Mileage != 40000 || r.Price != 815000 {
		t.Fatalf("unexpected first record: %+v", r)
	}
}

func TestReadCSVHeaderOrderFree(t *testing.T) {
	csv := `price,make,mileage,year,transmission,fuel,body
815000,toyota,40000,2018,manual,petrol,suv
`
	records, err := ReadCSV(writeCSV(t, csv))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if records[0].Price != 815000 || records[0].Body != "suv" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil || !IsLoadError(err) {
		t.Fatalf("err=%v, want load error", err)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	csv := `make,body,fuel,transmission,year,mileage
toyota,suv,petrol,manual,2018,40000
`
	_, err := ReadCSV(writeCSV(t, csv))
	if err == nil || !IsLoadError(err) {
		t.Fatalf("err=%v, want load error", err)
	}
	if !strings.Contains(err.Error(), "price") {
		t.Fatalf("err=%v, should name the missing column", err)
	}
}

func TestReadCSVBadRowNamesLine(t *testing.T) {
	csv := `make,body,fuel,transmission,year,mileage,price
toyota,suv,petrol,manual,2018,40000,815000
honda,sedan,diesel,automatic,abc,90000,540000
`
	_, err := ReadCSV(writeCSV(t, csv))
	if err == nil || !IsLoadError(err) {
		t.Fatalf("err=%v, want load error", err)
	}
	if !strings.Contains(err.Error(), "line 3") || !strings.Contains(err.Error(), "year") {
		t.Fatalf("err=%v, should name line and column", err)
	}
}

func TestReadCSVNegativePrice(t *testing.T) {
	csv := `make,body,fuel,transmission,year,mileage,price
toyota,suv,petrol,manual,2018,40000,-5
`
	if _, err := ReadCSV(writeCSV(t, csv)); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestReadCSVNoRows(t *testing.T) {
	csv := "make,body,fuel,transmission,year,mileage,price\n"
	_, err := ReadCSV(writeCSV(t, csv))
	if err == nil || !IsLoadError(err) {
		t.Fatalf("err=%v, want load error", err)
	}
}

func TestRecordFields(t *testing.T) {
	r := Record{Make: "toyota", Body: "suv", Fuel: "petrol", Transmission: "manual", Year: 2018, Mileage: 40000, Price: 815000}
	f := r.Fields()
	if f["year"] != "2018" || f["mileage"] != "40000" || f["make"] != "toyota" {
		t.Fatalf("fields=%v", f)
	}
	if _, ok := f["price"]; ok {
		t.Fatal("target column must not appear in feature fields")
	}
}
