package detection

import (
	"image"
	"image/color"
	"testing"
)

// createSplitImage creates a grayscale image whose left half is dark and
// right half is light
func createSplitImage(width, height int, dark, light uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := dark
			if x >= width/2 {
				v = light
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestOtsuLevel_Bimodal(t *testing.T) {
	img := createSplitImage(40, 20, 30, 220)

	level := OtsuLevel(img)
	if level < 30 || level >= 220 {
		t.Fatalf("level %d does not separate 30 from 220", level)
	}

	binary := Binarize(img, level)
	if got := binary.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("dark pixel: got %d, want 0", got)
	}
	if got := binary.GrayAt(39, 0).Y; got != 255 {
		t.Errorf("light pixel: got %d, want 255", got)
	}
}

func TestOtsuLevel_Uniform(t *testing.T) {
	img := createSplitImage(10, 10, 128, 128)
	if got := OtsuLevel(img); got != 0 {
		t.Errorf("uniform image: got level %d, want 0", got)
	}
}

func TestOtsuLevel_Empty(t *testing.T) {
	if got := OtsuLevel(&image.Gray{}); got != 0 {
		t.Errorf("empty image: got level %d, want 0", got)
	}
}

func TestBinarize_StrictlyAbove(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.SetGray(0, 0, color.Gray{Y: 99})
	img.SetGray(1, 0, color.Gray{Y: 100})
	img.SetGray(2, 0, color.Gray{Y: 101})

	binary := Binarize(img, 100)
	want := []uint8{0, 0, 255}
	for x, w := range want {
		if got := binary.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d: got %d, want %d", x, got, w)
		}
	}
}

func TestBinarize_MaxLevel(t *testing.T) {
	img := createSplitImage(4, 4, 255, 255)
	binary := Binarize(img, 255)
	for _, v := range binary.Pix {
		if v != 0 {
			t.Fatal("nothing can be above level 255")
		}
	}
}

func TestInvert(t *testing.T) {
	img := createSplitImage(4, 1, 0, 255)
	inv := Invert(img)
	if inv.GrayAt(0, 0).Y != 255 || inv.GrayAt(3, 0).Y != 0 {
		t.Errorf("unexpected inverted values %v", inv.Pix)
	}
}

func TestGrayscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)

	gray := Grayscale(img)
	if gray.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", gray.Bounds())
	}
	if gray.GrayAt(0, 0).Y < 250 {
		t.Errorf("white should stay bright, got %d", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y != 0 {
		t.Errorf("black should stay 0, got %d", gray.GrayAt(1, 0).Y)
	}
}

func TestBlur_ZeroRadiusCopies(t *testing.T) {
	img := createSplitImage(10, 10, 0, 255)
	out := Blur(img, 0)
	if &out.Pix[0] == &img.Pix[0] {
		t.Error("Blur should return a copy")
	}
	for i := range img.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Fatalf("pixel %d changed with zero radius", i)
		}
	}
}

func TestBlur_SoftensEdge(t *testing.T) {
	img := createSplitImage(20, 5, 0, 255)
	out := Blur(img, 2)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	edge := out.GrayAt(10, 2).Y
	if edge == 0 || edge == 255 {
		t.Errorf("expected intermediate value at the edge, got %d", edge)
	}
}
