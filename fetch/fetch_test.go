package fetch

import "bytes"
import "image"
import "image/color"
import "image/png"
import "net/http"
import "net/http/httptest"
import "sync"
import "testing"

import "github.com/pwiecz/pano_tiles/lib"

func TestTileURL(t *testing.T) {
	template := "https://tiles.example.com/{l}/{x}/{y}.jpg"
	url := TileURL(template, lib.TileCoord{X: 3, Y: 1, Level: 2})
	if url != "https://tiles.example.com/2/3/1.jpg" {
		t.Errorf("Expected expanded url \"https://tiles.example.com/2/3/1.jpg\", got %q", url)
	}
}

func newTestPyramid(t *testing.T) *lib.Pyramid {
	pyramid, err := lib.NewPyramid([]lib.Level{
		{Width: 2048, Height: 512, TileWidth: 512, TileHeight: 512},
	})
	if err != nil {
		t.Fatalf("Could not build pyramid: %v", err)
	}
	return pyramid
}

func encodeTestTile() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 4; i++ {
		img.Set(i, i, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestGetTileRejectsInvalidCoords(t *testing.T) {
	tiles := NewPanoTiles("https://example.com/{l}/{x}/{y}.png", "", newTestPyramid(t))
	if _, err := tiles.GetTile(lib.TileCoord{X: 0, Y: 0, Level: 1}); err == nil {
		t.Errorf("Expected an error for an out-of-range level")
	}
	if _, err := tiles.GetTile(lib.TileCoord{X: 0, Y: 1, Level: 0}); err == nil {
		t.Errorf("Expected an error for an out-of-range row")
	}
}

func TestGetTileWrapsAndCaches(t *testing.T) {
	tileBytes := encodeTestTile()
	var mutex sync.Mutex
	requests := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mutex.Lock()
		requests = append(requests, r.URL.Path)
		mutex.Unlock()
		w.Write(tileBytes)
	}))
	defer server.Close()

	tiles := NewPanoTiles(server.URL+"/{l}/{x}/{y}.png", "", newTestPyramid(t))
	// Column -1 wraps around to the last column of the 4x1 grid.
	img, err := tiles.GetTile(lib.TileCoord{X: -1, Y: 0, Level: 0})
	if err != nil {
		t.Fatalf("Could not fetch tile: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("Expected the decoded 4x4 test tile, got bounds %v", img.Bounds())
	}
	if len(requests) != 1 || requests[0] != "/0/3/0.png" {
		t.Fatalf("Expected a single request for /0/3/0.png, got %v", requests)
	}
	// The same tile addressed without wrapping is served from the
	// memory cache.
	if _, err := tiles.GetTile(lib.TileCoord{X: 3, Y: 0, Level: 0}); err != nil {
		t.Fatalf("Could not fetch cached tile: %v", err)
	}
	if len(requests) != 1 {
		t.Errorf("Expected the second fetch to hit the memory cache, got requests %v", requests)
	}
}

func TestGetTileReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()
	tiles := NewPanoTiles(server.URL+"/{l}/{x}/{y}.png", "", newTestPyramid(t))
	if _, err := tiles.GetTile(lib.TileCoord{X: 0, Y: 0, Level: 0}); err == nil {
		t.Errorf("Expected an error for a 404 response")
	}
}
