package codec

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/resample"
)

func testRaster(t *testing.T, channels int) *resample.Raster {
	t.Helper()
	r, err := resample.NewRaster(5, 7, channels)
	require.NoError(t, err)
	for i := range r.Pix {
		r.Pix[i] = uint8(i * 13)
	}
	if channels == 4 {
		// keep alpha non-zero so colors survive
		for i := 3; i < len(r.Pix); i += 4 {
			r.Pix[i] = 128 + uint8(i%100)
		}
	}
	return r
}

func TestRoundTripLossless(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}

	cases := []struct {
		name     string
		channels int
	}{
		{"gray.png", 1},
		{"rgb.png", 3},
		{"rgba.png", 4},
		{"rgb.bmp", 3},
		{"rgb.tif", 3},
		{"gray.tiff", 1},
	}

	for _, c := range cases {
		src := testRaster(t, c.channels)
		err := sink.Put(c.name, src)
		require.NoError(t, err, c.name)

		dst, err := Load(filepath.Join(dir, c.name))
		require.NoError(t, err, c.name)
		assert.True(t, src.Equal(dst), "%v: %v != %v", c.name, src, dst)
	}
}

func TestSaveLossy(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir, Quality: 75}
	src := testRaster(t, 3)

	for _, name := range []string{"out.jpg", "out.JPEG", "out.gif"} {
		require.NoError(t, sink.Put(name, src))

		dst, err := Load(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, src.Rows, dst.Rows, name)
		assert.Equal(t, src.Cols, dst.Cols, name)
	}
}

func TestSavePDF(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}

	require.NoError(t, sink.Put("out.pdf", testRaster(t, 3)))
	require.NoError(t, sink.Put("alpha.pdf", testRaster(t, 4)))

	data, err := os.ReadFile(filepath.Join(dir, "out.pdf"))
	require.NoError(t, err)
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}
	require.NoError(t, sink.Put("out.png", testRaster(t, 3)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.png", entries[0].Name())
}

func TestSaveUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}

	err := sink.Put("out.xyz", testRaster(t, 3))
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveInvalidRaster(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}

	err := sink.Put("out.png", &resample.Raster{Rows: 2, Cols: 2, Channels: 3})
	assert.True(t, resample.IsDegenerateSource(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadMissing(t *testing.T) {
	_, err := FileSource{}.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.True(t, resample.IsDecodeError(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("this is not an image"), 0644))

	_, err := Load(path)
	assert.True(t, resample.IsDecodeError(err))
	assert.Contains(t, err.Error(), "garbage.png")

	_, err = Decode(strings.NewReader("nope"))
	assert.True(t, resample.IsDecodeError(err))
}

func TestDecode(t *testing.T) {
	src := testRaster(t, 4)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "png", src, 0))

	dst, err := Decode(&buf)
	require.NoError(t, err)
	assert.True(t, src.Equal(dst))
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("a/b/Photo.JPG")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", f)

	_, err = FormatFor("noext")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Put("x", testRaster(t, 1)))
	assert.Error(t, Discard.Put("x", nil))
}
