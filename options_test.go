package framer

import "testing"

func TestDetectOptionsDefaults(t *testing.T) {
	o := applyDetectOptions(nil)
	if o.threshold != DefaultAlphaThreshold {
		t.Errorf("threshold = %d, want %d", o.threshold, DefaultAlphaThreshold)
	}
	if o.workers != 1 {
		t.Errorf("workers = %d, want 1", o.workers)
	}

	o = applyDetectOptions([]DetectOption{WithAlphaThreshold(7), WithWorkers(3)})
	if o.threshold != 7 || o.workers != 3 {
		t.Errorf("options = %+v, want threshold 7 workers 3", o)
	}
}

func TestComposeOptions(t *testing.T) {
	if o := applyComposeOptions(nil); o.interp != InterpBilinear {
		t.Errorf("default interp = %v, want bilinear", o.interp)
	}
	if o := applyComposeOptions([]ComposeOption{WithInterpolation(InterpBicubic)}); o.interp != InterpBicubic {
		t.Errorf("interp = %v, want bicubic", o.interp)
	}
}

func TestEncoderOptions(t *testing.T) {
	if o := applyEncoderOptions([]EncoderOption{WithDownloadName("")}); o.name != DefaultDownloadName {
		t.Errorf("name = %q, want default", o.name)
	}
	if o := applyEncoderOptions([]EncoderOption{WithDownloadName("x.png")}); o.name != "x.png" {
		t.Errorf("name = %q, want x.png", o.name)
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		in   string
		want InterpolationMode
		ok   bool
	}{
		{"nearest", InterpNearest, true},
		{"Bilinear", InterpBilinear, true},
		{"catmull-rom", InterpBicubic, true},
		{"lanczos", InterpBilinear, false},
	}
	for _, tt := range tests {
		got, ok := ParseInterpolation(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseInterpolation(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
