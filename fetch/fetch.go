package fetch

import "errors"
import "fmt"
import "image"
import "image/png"
import "io/ioutil"
import "log"
import "net/http"
import "os"
import "path/filepath"
import "strconv"
import "strings"
import "sync"

import _ "image/jpeg"

import "github.com/golang/groupcache/lru"
import "github.com/pwiecz/pano_tiles/lib"

const (
	MAX_DOWNLOAD_THREADS = 2
	MEM_CACHE_TILES      = 128
)

var ErrBusy = errors.New("Too many simultaneous requests")

type empty struct{}

type SyncCache struct {
	cache *lru.Cache
	lock  sync.Mutex
}

func NewSyncCache(numEntries int) *SyncCache {
	return &SyncCache{cache: lru.New(numEntries)}
}
func (c *SyncCache) Add(key lru.Key, value interface{}) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Add(key, value)
}
func (c *SyncCache) Get(key lru.Key) (value interface{}, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.cache.Get(key)
}
func (c *SyncCache) Remove(key lru.Key) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Remove(key)
}

// TileURL expands the {l}, {x} and {y} placeholders of the template
// with the tile's level, column and row.
func TileURL(template string, coord lib.TileCoord) string {
	url := strings.Replace(template, "{l}", strconv.Itoa(coord.Level), -1)
	url = strings.Replace(url, "{x}", strconv.Itoa(coord.X), -1)
	return strings.Replace(url, "{y}", strconv.Itoa(coord.Y), -1)
}

// PanoTiles fetches panorama tile images over http, caching decoded
// tiles in a bounded memory cache and raw tiles on disk.
type PanoTiles struct {
	urlTemplate           string
	pyramid               *lib.Pyramid
	cacheDir              string
	memCache              *SyncCache
	fetchSemaphore        chan empty
	requestsInFlightMutex sync.Mutex
	requestsInFlight      map[lib.TileCoord]empty
}

func NewPanoTiles(urlTemplate, cacheDir string, pyramid *lib.Pyramid) *PanoTiles {
	if cacheDir != "" {
		if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
			os.MkdirAll(cacheDir, 0755)
		}
	}
	semaphore := make(chan empty, MAX_DOWNLOAD_THREADS)
	e := empty{}
	for i := 0; i < MAX_DOWNLOAD_THREADS; i++ {
		semaphore <- e
	}
	return &PanoTiles{
		urlTemplate:      urlTemplate,
		pyramid:          pyramid,
		cacheDir:         cacheDir,
		memCache:         NewSyncCache(MEM_CACHE_TILES),
		fetchSemaphore:   semaphore,
		requestsInFlight: make(map[lib.TileCoord]empty),
	}
}

func (m *PanoTiles) GetTile(coord lib.TileCoord) (image.Image, error) {
	if coord.Level < 0 || coord.Level >= m.pyramid.NumLevels() {
		return nil, fmt.Errorf("Invalid tile level %v", coord)
	}
	level := m.pyramid.Level(coord.Level)
	if coord.Y < 0 || coord.Y >= level.NumTilesY() {
		return nil, fmt.Errorf("Invalid tile row %v", coord)
	}
	numX := level.NumTilesX()
	wrappedCoord := coord
	for wrappedCoord.X < 0 {
		wrappedCoord.X += numX
	}
	wrappedCoord.X %= numX

	if tile, ok := m.memCache.Get(wrappedCoord); ok {
		if tileImage, ok := tile.(image.Image); ok {
			return tileImage, nil
		}
		m.memCache.Remove(wrappedCoord)
	}

	m.requestsInFlightMutex.Lock()
	if _, ok := m.requestsInFlight[wrappedCoord]; ok {
		m.requestsInFlightMutex.Unlock()
		return nil, fmt.Errorf("Coords already requested %v", wrappedCoord)
	}
	m.requestsInFlight[wrappedCoord] = empty{}
	m.requestsInFlightMutex.Unlock()

	img, err := m.getTileSlow(wrappedCoord)

	m.requestsInFlightMutex.Lock()
	delete(m.requestsInFlight, wrappedCoord)
	m.requestsInFlightMutex.Unlock()

	if err != nil {
		return nil, err
	}
	m.memCache.Add(wrappedCoord, img)
	return img, nil
}

func (m *PanoTiles) getTileSlow(coord lib.TileCoord) (image.Image, error) {
	if m.cacheDir == "" {
		return m.fetchTile(coord)
	}
	cachedTileDir := filepath.Join(m.cacheDir, strconv.Itoa(coord.Level), strconv.Itoa(coord.X))
	if _, err := os.Stat(cachedTileDir); os.IsNotExist(err) {
		if err := os.MkdirAll(cachedTileDir, 0755); err != nil {
			log.Println("Cannot create cache dir", err)
			return m.fetchTile(coord)
		}
	}
	cachedTilePath := filepath.Join(cachedTileDir, strconv.Itoa(coord.Y)+".png")
	f, err := os.Open(cachedTilePath)
	if err == nil {
		img, err := png.Decode(f)
		f.Close()
		if err == nil {
			return img, err
		}
		log.Println("Cannot decode cached file", cachedTilePath, err)
		if err := os.Remove(cachedTilePath); err != nil {
			log.Println("Cannot remove cached tile", cachedTilePath)
		}
	}
	img, err := m.fetchTile(coord)
	if err != nil {
		return nil, err
	}
	tmpfile, err := ioutil.TempFile(cachedTileDir, ".tile_*.png")
	if err != nil {
		log.Println("Cannot create temp tile file", err)
		return img, nil
	}
	tmpname := tmpfile.Name()
	if err := png.Encode(tmpfile, img); err != nil {
		log.Println("Cannot encode image tile file", err)
		tmpfile.Close()
		os.Remove(tmpname)
		return img, nil
	}
	if err := tmpfile.Sync(); err != nil {
		log.Println("Cannot sync temp file", err)
	}
	if err := tmpfile.Close(); err != nil {
		log.Println("Cannot close temp file", err)
	}
	if err := os.Rename(tmpname, cachedTilePath); err != nil {
		log.Println("Cannot rename temp file", err)
	}
	return img, nil
}

func (m *PanoTiles) fetchTile(coord lib.TileCoord) (image.Image, error) {
	select {
	case <-m.fetchSemaphore:
		defer func() {
			m.fetchSemaphore <- empty{}
		}()
		url := TileURL(m.urlTemplate, coord)
		req, err := http.NewRequest("GET", url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "pano_tiles 1.0")
		var client http.Client
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("\"%s\" returned status code %d", url, resp.StatusCode)
		}
		tile, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, err
		}
		return tile, nil
	default:
		return nil, ErrBusy
	}
}
