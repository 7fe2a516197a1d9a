package configuration

import "encoding/json"
import "fmt"
import "io/ioutil"
import "os"
import "path/filepath"

import "github.com/pwiecz/pano_tiles/lib"

// LevelSpec is the JSON form of one pyramid level.
type LevelSpec struct {
	Width      int `json:"width"`
	Height     int `json:"height"`
	TileWidth  int `json:"tile_width"`
	TileHeight int `json:"tile_height"`
}

// Configuration describes one panorama: its level pyramid, where its
// tiles are fetched from and where they are cached on disk. The level
// list is the only part the core validates; everything else is plain
// data for the fetcher.
type Configuration struct {
	Levels   []LevelSpec `json:"levels"`
	TileURL  string      `json:"tile_url,omitempty"`
	CacheDir string      `json:"cache_dir,omitempty"`
}

func LoadConfiguration(filename string) (*Configuration, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	bytes, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, err
	}
	conf := &Configuration{}
	if err := json.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("cannot parse configuration file %s: %w", filename, err)
	}
	return conf, nil
}

func SaveConfiguration(conf *Configuration, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		panic(err)
	}
	return ioutil.WriteFile(filename, bytes, 0644)
}

// NewPyramid builds the validated level pyramid described by the
// configuration. Invalid level lists are rejected by lib.NewPyramid
// with lib.ErrConfiguration.
func (c *Configuration) NewPyramid() (*lib.Pyramid, error) {
	levels := make([]lib.Level, 0, len(c.Levels))
	for _, spec := range c.Levels {
		levels = append(levels, lib.Level{
			Width:      spec.Width,
			Height:     spec.Height,
			TileWidth:  spec.TileWidth,
			TileHeight: spec.TileHeight,
		})
	}
	return lib.NewPyramid(levels)
}
