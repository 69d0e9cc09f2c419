package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"planet-renderer/internal/logging"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 60), B: 200, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, path string, encode func(*bytes.Buffer) error) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestLoadMapFormats(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	lossless := map[string]func(*bytes.Buffer) error{
		"a.png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"b.bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"c.tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
		"d.webp": func(b *bytes.Buffer) error { return nativewebp.Encode(b, src, nil) },
		"f.tga":  func(b *bytes.Buffer) error { return tga.Encode(b, src) },
	}
	for name, enc := range lossless {
		path := filepath.Join(dir, name)
		writeFile(t, path, enc)

		img, err := LoadMap(path)
		require.NoError(t, err, name)
		require.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds(), name)
		require.Equal(t, src.NRGBAAt(5, 2), img.NRGBAAt(5, 2), name)
	}

	// JPEG is lossy; the loaded pixels must match a plain decode of the file.
	path := filepath.Join(dir, "e.jpg")
	writeFile(t, path, func(b *bytes.Buffer) error { return jpeg.Encode(b, src, &jpeg.Options{Quality: 95}) })
	img, err := LoadMap(path)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	ref, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	for _, pt := range []image.Point{{0, 0}, {3, 1}, {7, 3}} {
		want := color.NRGBAModel.Convert(ref.At(pt.X, pt.Y)).(color.NRGBA)
		got := img.NRGBAAt(pt.X, pt.Y)
		require.Equal(t, uint8(255), got.A, "%v", pt)
		require.InDelta(t, int(want.R), int(got.R), 1, "%v", pt)
		require.InDelta(t, int(want.G), int(got.G), 1, "%v", pt)
		require.InDelta(t, int(want.B), int(got.B), 1, "%v", pt)
	}
	require.InDelta(t, 200, int(img.NRGBAAt(3, 1).B), 40)

	path = filepath.Join(dir, "g.gif")
	writeFile(t, path, func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) })
	img, err = LoadMap(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	require.Equal(t, uint8(255), img.NRGBAAt(3, 1).A)
}

func TestLoadMapByExtension(t *testing.T) {
	// tga is linked in and registers an empty magic; sniffing must not reach it.
	dir := t.TempDir()
	src := testImage()

	pngPath := filepath.Join(dir, "earth.png")
	writeFile(t, pngPath, func(b *bytes.Buffer) error { return png.Encode(b, src) })
	img, err := LoadMap(pngPath)
	require.NoError(t, err)
	require.Equal(t, src.NRGBAAt(7, 3), img.NRGBAAt(7, 3))

	tgaPath := filepath.Join(dir, "earth.tga")
	writeFile(t, tgaPath, func(b *bytes.Buffer) error { return tga.Encode(b, src) })
	img, err = LoadMap(tgaPath)
	require.NoError(t, err)
	require.Equal(t, src.NRGBAAt(7, 3), img.NRGBAAt(7, 3))
}

func TestLoadMapErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMap(filepath.Join(dir, "notes.txt"))
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = LoadMap(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0644))
	_, err = LoadMap(bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode")
}

func TestToNRGBAOrigin(t *testing.T) {
	sub := testImage().SubImage(image.Rect(2, 1, 6, 3))
	img := toNRGBA(sub)
	require.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	require.Equal(t, testImage().NRGBAAt(2, 1), img.NRGBAAt(0, 0))

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.Pix[0] = 77
	g := toNRGBA(gray)
	require.Equal(t, color.NRGBA{R: 77, G: 77, B: 77, A: 255}, g.NRGBAAt(0, 0))
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	src := testImage()
	enc := func(b *bytes.Buffer) error { return png.Encode(b, src) }
	encJPEG := func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) }

	writeFile(t, filepath.Join(dir, "earth.jpg"), encJPEG)
	writeFile(t, filepath.Join(dir, "images", "Earth.png"), enc)
	writeFile(t, filepath.Join(dir, "images", "mars.jpg"), encJPEG)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))

	idx := BuildIndex(dir)
	require.Equal(t, 2, idx.Len())

	path, ok := idx.ResolvePath("EARTH")
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "images", "Earth.png"), path)

	path, ok = idx.ResolvePath(`maps\mars.png`)
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "images", "mars.jpg"), path)

	_, ok = idx.ResolvePath("venus")
	require.False(t, ok)
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "moon.png"), func(b *bytes.Buffer) error { return png.Encode(b, testImage()) })

	c := NewCache(BuildIndex(dir), logging.Discard())

	var wg sync.WaitGroup
	got := make([]*image.NRGBA, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = c.Resolve("moon")
		}(i)
	}
	wg.Wait()
	require.NotNil(t, got[0])
	for _, img := range got {
		require.Same(t, got[0], img)
	}

	require.Nil(t, c.Resolve("phobos"))
	require.Nil(t, c.Load(filepath.Join(dir, "missing.png")))
}
