package zonetab

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	in := `# comment line
AD	+4230-00131	Europe/Andorra
CI	+0519-00402	Africa/Abidjan	comment here
US	+404251-0740023	America/New_York
`
	descs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(descs) != 3 {
		t.Fatalf("Parse() got %d entries, want 3", len(descs))
	}

	andorra := descs["Europe/Andorra"]
	want := Coordinate{Negative: false, Degrees: 42, Minutes: 30, Seconds: 0}
	if andorra.Latitude != want {
		t.Errorf("Andorra latitude = %+v, want %+v", andorra.Latitude, want)
	}
	wantLong := Coordinate{Negative: true, Degrees: 1, Minutes: 31, Seconds: 0}
	if andorra.Longitude != wantLong {
		t.Errorf("Andorra longitude = %+v, want %+v", andorra.Longitude, wantLong)
	}

	abidjan := descs["Africa/Abidjan"]
	if abidjan.Comment != "comment here" {
		t.Errorf("Abidjan comment = %q, want %q", abidjan.Comment, "comment here")
	}
	if abidjan.CountryCode != "CI" {
		t.Errorf("Abidjan country = %q, want CI", abidjan.CountryCode)
	}

	ny := descs["America/New_York"]
	wantNYLat := Coordinate{Negative: false, Degrees: 40, Minutes: 42, Seconds: 51}
	if ny.Latitude != wantNYLat {
		t.Errorf("New_York latitude = %+v, want %+v", ny.Latitude, wantNYLat)
	}
	wantNYLong := Coordinate{Negative: true, Degrees: 74, Minutes: 0, Seconds: 23}
	if ny.Longitude != wantNYLong {
		t.Errorf("New_York longitude = %+v, want %+v", ny.Longitude, wantNYLong)
	}
}

func TestParseInvalidLine(t *testing.T) {
	if _, err := Parse(strings.NewReader("AD\tonlyonefield\n")); err == nil {
		t.Error("Parse() with too few fields: want error, got nil")
	}
	if _, err := Parse(strings.NewReader("AD\tbadcoords\tEurope/Andorra\n")); err == nil {
		t.Error("Parse() with bad coordinates: want error, got nil")
	}
}

func TestWriteZonesTab(t *testing.T) {
	descs := map[string]Description{
		"Europe/Andorra": {
			Latitude:  Coordinate{Degrees: 42, Minutes: 30},
			Longitude: Coordinate{Negative: true, Degrees: 1, Minutes: 31},
		},
	}
	var b strings.Builder
	var missed []string
	err := WriteZonesTab(&b, []string{"Europe/Andorra", "Asia/Nonexistent"}, descs, func(name string) {
		missed = append(missed, name)
	})
	if err != nil {
		t.Fatalf("WriteZonesTab() error = %v", err)
	}
	want := "+423000 -0013100 Europe/Andorra\nAsia/Nonexistent\n"
	if b.String() != want {
		t.Errorf("WriteZonesTab() =\n%s\nwant:\n%s", b.String(), want)
	}
	if len(missed) != 1 || missed[0] != "Asia/Nonexistent" {
		t.Errorf("missing callback = %v, want [Asia/Nonexistent]", missed)
	}
}

func TestWriteZonesTabAliasFallback(t *testing.T) {
	descs := map[string]Description{
		"America/Indianapolis": {
			Latitude:  Coordinate{Degrees: 39, Minutes: 46},
			Longitude: Coordinate{Negative: true, Degrees: 86, Minutes: 9},
		},
	}
	var b strings.Builder
	if err := WriteZonesTab(&b, []string{"America/Indiana/Indianapolis"}, descs, nil); err != nil {
		t.Fatalf("WriteZonesTab() error = %v", err)
	}
	want := "+394600 -0860900 America/Indiana/Indianapolis\n"
	if b.String() != want {
		t.Errorf("WriteZonesTab() =\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestWriteZonesH(t *testing.T) {
	var b strings.Builder
	if err := WriteZonesH(&b, []string{"Europe/Andorra", "Africa/Abidjan"}); err != nil {
		t.Fatalf("WriteZonesH() error = %v", err)
	}
	want := "N_(\"Europe/Andorra\");\nN_(\"Africa/Abidjan\");\n"
	if b.String() != want {
		t.Errorf("WriteZonesH() =\n%s\nwant:\n%s", b.String(), want)
	}
}
