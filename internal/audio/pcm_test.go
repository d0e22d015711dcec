package audio

import (
	"reflect"
	"testing"
)

func TestPCM16LERoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 1234}
	got, err := DecodePCM16LE(EncodePCM16LE(samples))
	if err != nil {
		t.Fatalf("DecodePCM16LE() error = %v", err)
	}
	if !reflect.DeepEqual(got, samples) {
		t.Errorf("round trip = %v, want %v", got, samples)
	}

	if _, err := DecodePCM16LE([]byte{1, 2, 3}); err == nil {
		t.Error("DecodePCM16LE() should reject odd lengths")
	}
}

func TestResample(t *testing.T) {
	tests := []struct {
		name       string
		samples    []int16
		channels   int
		from, to   int
		wantFrames int
	}{
		{"same rate", []int16{1, 2, 3, 4}, 1, 24000, 24000, 4},
		{"upsample 2x", []int16{0, 100, 200, 300}, 1, 22050, 44100, 8},
		{"downsample 2x", []int16{0, 0, 100, 100, 200, 200, 300, 300}, 2, 48000, 24000, 2},
		{"empty", nil, 1, 8000, 16000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(tt.samples, tt.channels, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}
			if frames := len(got) / tt.channels; frames != tt.wantFrames {
				t.Errorf("Resample() frames = %d, want %d", frames, tt.wantFrames)
			}
		})
	}

	// linear interpolation puts the midpoint between neighbours
	up, _ := Resample([]int16{0, 100}, 1, 1000, 2000)
	if up[1] != 50 {
		t.Errorf("interpolated sample = %d, want 50", up[1])
	}

	if _, err := Resample([]int16{1}, 1, 0, 100); err == nil {
		t.Error("Resample() should reject zero rates")
	}
}

func TestRemix(t *testing.T) {
	stereo, err := Remix([]int16{1, 2}, 1, 2)
	if err != nil {
		t.Fatalf("Remix() error = %v", err)
	}
	if want := []int16{1, 1, 2, 2}; !reflect.DeepEqual(stereo, want) {
		t.Errorf("mono->stereo = %v, want %v", stereo, want)
	}

	mono, err := Remix([]int16{10, 20, -10, -30}, 2, 1)
	if err != nil {
		t.Fatalf("Remix() error = %v", err)
	}
	if want := []int16{15, -20}; !reflect.DeepEqual(mono, want) {
		t.Errorf("stereo->mono = %v, want %v", mono, want)
	}

	if _, err := Remix([]int16{1}, 1, 6); err == nil {
		t.Error("Remix() should reject unsupported layouts")
	}
}
