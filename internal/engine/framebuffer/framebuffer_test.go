package framebuffer

import "testing"

func TestScaled(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		scale         int
		wantW, wantH  int32
	}{
		{"unit", 800, 600, 1, 800, 600},
		{"double", 800, 600, 2, 1600, 1200},
		{"zero scale", 800, 600, 0, 800, 600},
		{"zero size", 0, 0, 3, 3, 3},
		{"clamped keeps aspect", 4000, 2000, 4, MaxSize, MaxSize / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Scaled(tt.width, tt.height, tt.scale)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Scaled(%d, %d, %d) = %dx%d, want %dx%d",
					tt.width, tt.height, tt.scale, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
