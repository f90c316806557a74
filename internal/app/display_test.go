package app

import (
	"bytes"
	"strings"
	"testing"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func litPixels(img *image1bit.VerticalLSB) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.BitAt(x, y) == image1bit.On {
				n++
			}
		}
	}
	return n
}

func TestDisplayRender(t *testing.T) {
	tests := []struct {
		content string
		payload string
	}{
		{"sample", `{"acc_mg":{"x":1,"y":2,"z":1000},"odr_hz":100,"fs_g":2}`},
		{"pose", `{"roll":12.5,"pitch":-3}`},
		{"events", `{"wake_up":true,"face":"z_up"}`},
	}
	for _, tc := range tests {
		t.Run(tc.content, func(t *testing.T) {
			d := &DisplayData{}
			waiting, err := d.render(tc.content)
			if err != nil {
				t.Fatal(err)
			}
			if litPixels(waiting) == 0 {
				t.Error("waiting screen is blank")
			}

			if err := d.update(tc.content, []byte(tc.payload)); err != nil {
				t.Fatal(err)
			}
			img, err := d.render(tc.content)
			if err != nil {
				t.Fatal(err)
			}
			if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 64 {
				t.Errorf("bounds = %v", img.Bounds())
			}
			if bytes.Equal(img.Pix, waiting.Pix) {
				t.Error("data screen equals the waiting screen")
			}
		})
	}
}

func TestDisplayErrors(t *testing.T) {
	d := &DisplayData{}
	if _, err := d.render("gps"); err == nil {
		t.Error("render of unknown content succeeded")
	}
	if err := d.update("gps", []byte(`{}`)); err == nil {
		t.Error("update of unknown content succeeded")
	}
	if err := d.update("pose", []byte(`{`)); err == nil {
		t.Error("malformed payload accepted")
	}
	if d.havePose {
		t.Error("malformed payload marked pose as received")
	}
}

func TestContentTopic(t *testing.T) {
	cfg := testConfig(t, "")
	for content, want := range map[string]string{
		"sample": cfg.TopicSample,
		"pose":   cfg.TopicPose,
		"events": cfg.TopicEvents,
	} {
		got, err := contentTopic(cfg, content)
		if err != nil || got != want {
			t.Errorf("contentTopic(%q) = %q, %v", content, got, err)
		}
	}
	if _, err := contentTopic(cfg, "temperature"); err == nil || !strings.Contains(err.Error(), "temperature") {
		t.Errorf("temperature: err = %v", err)
	}
}

func TestRenderSplash(t *testing.T) {
	if litPixels(renderSplash("left")) == 0 {
		t.Error("splash is blank")
	}
}
