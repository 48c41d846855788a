package graphics

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff0000", ColorRed, false},
		{"ff00ff00", ColorGreen, false},
		{"#800000ff", RGBA8(0, 0, 255, 0x80), false},
		{"  #000000 ", ColorBlack, false},
		{"#fff", 0, true},
		{"#zzzzzz", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	c := RGBA8(0x12, 0x34, 0x56, 0x78)
	if c.String() != "#78123456" {
		t.Fatalf("String() = %s", c.String())
	}
	back, err := ParseColor(c.String())
	if err != nil || back != c {
		t.Fatalf("ParseColor(String()) = %v, %v", back, err)
	}
}

func TestChannels(t *testing.T) {
	a, r, g, b := RGBA8(1, 2, 3, 4).Channels()
	if a != 4 || r != 1 || g != 2 || b != 3 {
		t.Errorf("Channels() = %d %d %d %d", a, r, g, b)
	}
}

func TestWithAlpha(t *testing.T) {
	if got := ColorRed.WithAlpha(0); got != Color(0x00FF0000) {
		t.Errorf("WithAlpha(0) = %v", got)
	}
	if got := ColorRed.WithAlpha(0.5).Alpha(); got < 0.49 || got > 0.51 {
		t.Errorf("Alpha() = %v", got)
	}
}
