package gainers

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeScan_RoundTrip(t *testing.T) {
	on := day("2025-03-03")
	s := snap("ACME", 12.5, 15, 6)
	s.On = on
	s.MarketCap = Known(2.5e9)
	s.Week52Low, s.Week52High = Known(8.25), Known(13)
	records := []ScanRecord{
		{Snapshot: s, Tags: Classify(s)},
		{Snapshot: Snapshot{Ticker: "NADA", On: on, Price: Known(1), Week52High: Known(2)}},
		{Snapshot: Snapshot{Ticker: "NONE", On: on, Price: Known(1)}},
	}
	var buf bytes.Buffer
	if err := EncodeScan(&buf, records); err != nil {
		t.Fatalf("EncodeScan() error = %v", err)
	}
	if !strings.Contains(buf.String(), ",8.25 - 13,") || !strings.Contains(buf.String(), ",N/A - 2,") {
		t.Errorf("EncodeScan() has no 52W Range column:\n%s", buf.String())
	}
	got, err := DecodeScan(&buf)
	if err != nil {
		t.Fatalf("DecodeScan() error = %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("DecodeScan() = %d records, want %d", len(got), len(records))
	}
	for i := range got {
		if got[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestMergeScan(t *testing.T) {
	rec := func(ticker string, price float64) ScanRecord {
		return ScanRecord{Snapshot: Snapshot{Ticker: ticker, Price: Known(price)}}
	}
	old := []ScanRecord{rec("A", 1), rec("B", 1)}
	merged := mergeScan(old, []ScanRecord{rec("B", 2), rec("C", 2)})
	want := []ScanRecord{rec("A", 1), rec("B", 2), rec("C", 2)}
	if len(merged) != len(want) {
		t.Fatalf("mergeScan() = %v, want %v", merged, want)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("mergeScan()[%d] = %+v, want %+v", i, merged[i], want[i])
		}
	}
	if old[1].Price != Known(1) {
		t.Errorf("mergeScan() modified its input")
	}
}

func TestDecodeScan_WithoutRange(t *testing.T) {
	in := "Date,Symbol,Price,Change%,Volume,Market Cap,PE (TTM),EPS (TTM),RSI (14),Weekly Ret %,Monthly Ret %,YTD Ret %,52W Ret %,List\n" +
		"2025-03-03,ACME,12.5,N/A,N/A,N/A,N/A,N/A,N/A,N/A,6,N/A,15,Simmering Growth\n"
	got, err := DecodeScan(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeScan() error = %v", err)
	}
	if len(got) != 1 || got[0].Ticker != "ACME" || !got[0].Tags.Has(SimmeringGrowth) || got[0].Week52Low.IsKnown() {
		t.Errorf("DecodeScan() = %+v", got)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in        string
		low, high Metric
		wantErr   bool
	}{
		{in: "1.5 - 20", low: Known(1.5), high: Known(20)},
		{in: "N/A", low: Unknown, high: Unknown},
		{in: "", low: Unknown, high: Unknown},
		{in: "3 - N/A", low: Known(3), high: Unknown},
		{in: "12", wantErr: true},
		{in: "low - high", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			low, high, err := parseRange(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseRange(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && (low != tc.low || high != tc.high) {
				t.Errorf("parseRange(%q) = %v, %v, want %v, %v", tc.in, low, high, tc.low, tc.high)
			}
		})
	}
}
