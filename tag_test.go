package gainers

import "testing"

func TestParseTag(t *testing.T) {
	testCases := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{in: "Simmering Growth", want: SimmeringGrowth},
		{in: "simmering_growth", want: SimmeringGrowth},
		{in: "SimmeringGrowth", want: SimmeringGrowth},
		{in: "Rockets", want: Rockets},
		{in: "turnarounds", want: Turnarounds},
		{in: "Other", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseTag(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTag(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTag(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTagSet(t *testing.T) {
	s := NewTagSet(Turnarounds, SimmeringGrowth)
	if got, want := s.String(), "Simmering Growth;Turnarounds"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if s.Len() != 2 || !s.Has(Turnarounds) || s.Has(Rockets) {
		t.Errorf("TagSet %v has wrong members", s)
	}
	if got := TagSet(0).String(); got != "Other" {
		t.Errorf("empty TagSet String() = %q, want %q", got, "Other")
	}

	for _, str := range []string{"Simmering Growth;Turnarounds", "Other", "Rockets"} {
		parsed, err := ParseTagSet(str)
		if err != nil {
			t.Errorf("ParseTagSet(%q) error = %v", str, err)
			continue
		}
		if parsed.String() != str {
			t.Errorf("ParseTagSet(%q).String() = %q", str, parsed.String())
		}
	}
}
