package main

import "flag"
import "fmt"
import "image"
import "image/png"
import "log"
import "os"
import "path/filepath"

import "github.com/golang/geo/r3"
import "github.com/golang/geo/s1"
import "golang.org/x/exp/slices"
import "golang.org/x/image/draw"

import "github.com/pwiecz/pano_tiles/configuration"
import "github.com/pwiecz/pano_tiles/fetch"
import "github.com/pwiecz/pano_tiles/lib"

func loadPyramid(filename string) (*configuration.Configuration, *lib.Pyramid) {
	conf, err := configuration.LoadConfiguration(filename)
	if err != nil {
		log.Fatalf("Could not read configuration %s : %v\n", filename, err)
	}
	pyramid, err := conf.NewPyramid()
	if err != nil {
		log.Fatalf("Invalid pyramid in %s : %v\n", filename, err)
	}
	return conf, pyramid
}

func sortTiles(tiles []lib.TileCoord) {
	slices.SortFunc(tiles, func(a, b lib.TileCoord) bool {
		return a.Less(b)
	})
}

func printTileVertices(geometry lib.Geometry, tile lib.TileCoord) {
	var buf [4]r3.Vector
	for _, vertex := range geometry.TileVertices(tile, buf[:0]) {
		fmt.Printf("  (%.6f, %.6f, %.6f)\n", vertex.X, vertex.Y, vertex.Z)
	}
}

func main() {
	fileBase := filepath.Base(os.Args[0])
	infoCmd := flag.NewFlagSet("info", flag.ExitOnError)
	infoCmd.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s info <config_file>\n", fileBase)
	}
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedYaw, seedPitch := angleValue{}, angleValue{}
	seedCmd.Var(&seedYaw, "yaw", "view direction yaw in degrees")
	seedCmd.Var(&seedPitch, "pitch", "view direction pitch in degrees")
	seedLevel := seedCmd.Int("level", 0, "pyramid level of the tile")
	seedCmd.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s seed [--yaw=<deg>] [--pitch=<deg>] [--level=<level>] <config_file>\n", fileBase)
		seedCmd.PrintDefaults()
	}
	visibleCmd := flag.NewFlagSet("visible", flag.ExitOnError)
	visibleYaw, visiblePitch := angleValue{}, angleValue{}
	visibleFov := angleValue{Radians: lib.DefaultFov}
	visibleSize := sizeValue{Width: 1024, Height: 768}
	visibleCmd.Var(&visibleYaw, "yaw", "view direction yaw in degrees")
	visibleCmd.Var(&visiblePitch, "pitch", "view direction pitch in degrees")
	visibleCmd.Var(&visibleFov, "fov", "vertical field of view in degrees")
	visibleCmd.Var(&visibleSize, "size", "viewport size as <width>x<height>")
	visibleLevel := visibleCmd.Int("level", 0, "pyramid level to search")
	visibleVertices := visibleCmd.Bool("vertices", false, "also print sphere vertices of each tile")
	visibleCmd.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s visible [--yaw=<deg>] [--pitch=<deg>] [--fov=<deg>] [--size=<w>x<h>] [--level=<level>] [--vertices] <config_file>\n", fileBase)
		visibleCmd.PrintDefaults()
	}
	stitchCmd := flag.NewFlagSet("stitch", flag.ExitOnError)
	stitchLevel := stitchCmd.Int("level", 0, "pyramid level to stitch")
	stitchOut := stitchCmd.String("out", "preview.png", "output PNG file")
	stitchWidth := stitchCmd.Int("out_width", 2048, "width of the output image in pixels")
	stitchURL := stitchCmd.String("tile_url", "", "tile URL template with {l},{x},{y} placeholders, overrides the configuration")
	stitchCmd.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s stitch [--level=<level>] [--out=<file.png>] [--out_width=<pixels>] [--tile_url=<template>] <config_file>\n", fileBase)
		stitchCmd.PrintDefaults()
	}

	defaultUsage := flag.Usage
	flag.Usage = func() {
		defaultUsage()
		infoCmd.Usage()
		seedCmd.Usage()
		visibleCmd.Usage()
		stitchCmd.Usage()
	}
	flag.Parse()
	if len(flag.Args()) < 1 {
		flag.Usage()
		os.Exit(0)
	}
	switch flag.Args()[0] {
	case "info":
		infoCmd.Parse(flag.Args()[1:])
		fileArgs := infoCmd.Args()
		if len(fileArgs) != 1 {
			log.Fatalln("info command requires exactly one config file argument")
		}
		_, pyramid := loadPyramid(fileArgs[0])
		fmt.Printf("%d levels, max tile size %d\n", pyramid.NumLevels(), pyramid.MaxTileSize())
		for i := 0; i < pyramid.NumLevels(); i++ {
			level := pyramid.Level(i)
			fmt.Printf("%d: %dx%d pixels, %dx%d tiles of %dx%d (edge tiles %dx%d)\n",
				i, level.Width, level.Height,
				level.NumTilesX(), level.NumTilesY(),
				level.TileWidth, level.TileHeight,
				level.EdgeTileWidth(), level.EdgeTileHeight())
		}
	case "seed":
		seedCmd.Parse(flag.Args()[1:])
		fileArgs := seedCmd.Args()
		if len(fileArgs) != 1 {
			log.Fatalln("seed command requires exactly one config file argument")
		}
		_, pyramid := loadPyramid(fileArgs[0])
		if *seedLevel < 0 || *seedLevel >= pyramid.NumLevels() {
			log.Fatalf("level must be between 0 and %d\n", pyramid.NumLevels()-1)
		}
		geometry := lib.NewEquirectGeometry(pyramid)
		tile := geometry.ClosestTile(seedYaw.Radians, seedPitch.Radians, *seedLevel)
		fmt.Println(tile)
	case "visible":
		visibleCmd.Parse(flag.Args()[1:])
		fileArgs := visibleCmd.Args()
		if len(fileArgs) != 1 {
			log.Fatalln("visible command requires exactly one config file argument")
		}
		_, pyramid := loadPyramid(fileArgs[0])
		if *visibleLevel < 0 || *visibleLevel >= pyramid.NumLevels() {
			log.Fatalf("level must be between 0 and %d\n", pyramid.NumLevels()-1)
		}
		geometry := lib.NewEquirectGeometry(pyramid)
		view := lib.NewView(visibleYaw.Radians, visiblePitch.Radians,
			s1.Angle(visibleFov.Radians), visibleSize.Width, visibleSize.Height)
		tiles, err := lib.VisibleTiles(geometry, view, *visibleLevel)
		if err != nil {
			log.Fatalf("Could not search for visible tiles: %v\n", err)
		}
		sortTiles(tiles)
		for _, tile := range tiles {
			fmt.Println(tile)
			if *visibleVertices {
				printTileVertices(geometry, tile)
			}
		}
	case "stitch":
		stitchCmd.Parse(flag.Args()[1:])
		fileArgs := stitchCmd.Args()
		if len(fileArgs) != 1 {
			log.Fatalln("stitch command requires exactly one config file argument")
		}
		conf, pyramid := loadPyramid(fileArgs[0])
		if *stitchLevel < 0 || *stitchLevel >= pyramid.NumLevels() {
			log.Fatalf("level must be between 0 and %d\n", pyramid.NumLevels()-1)
		}
		urlTemplate := conf.TileURL
		if *stitchURL != "" {
			urlTemplate = *stitchURL
		}
		if urlTemplate == "" {
			log.Fatalln("no tile_url in the configuration and no --tile_url given")
		}
		tiles := fetch.NewPanoTiles(urlTemplate, conf.CacheDir, pyramid)
		img, err := stitchLevelImage(tiles, pyramid.Level(*stitchLevel), *stitchLevel, *stitchWidth)
		if err != nil {
			log.Fatalf("Could not stitch level %d: %v\n", *stitchLevel, err)
		}
		out, err := os.Create(*stitchOut)
		if err != nil {
			log.Fatalf("Could not create %s : %v\n", *stitchOut, err)
		}
		defer out.Close()
		if err := png.Encode(out, img); err != nil {
			log.Fatalf("Could not encode %s : %v\n", *stitchOut, err)
		}
	default:
		log.Fatalf("Unknown command: \"%s\"\n", flag.Args()[0])
	}
}

// stitchLevelImage fetches every tile of the level and composites
// them, scaled, into a single equirectangular image outWidth pixels
// wide.
func stitchLevelImage(tiles *fetch.PanoTiles, level lib.Level, levelIndex, outWidth int) (image.Image, error) {
	outHeight := outWidth * level.Height / level.Width
	out := image.NewRGBA(image.Rect(0, 0, outWidth, outHeight))
	for y := 0; y < level.NumTilesY(); y++ {
		for x := 0; x < level.NumTilesX(); x++ {
			coord := lib.TileCoord{X: x, Y: y, Level: levelIndex}
			tile, err := tiles.GetTile(coord)
			if err != nil {
				return nil, fmt.Errorf("tile %v: %w", coord, err)
			}
			minX := x * level.TileWidth * outWidth / level.Width
			minY := y * level.TileHeight * outHeight / level.Height
			tileWidth, tileHeight := level.TileWidth, level.TileHeight
			if x == level.NumTilesX()-1 {
				tileWidth = level.EdgeTileWidth()
			}
			if y == level.NumTilesY()-1 {
				tileHeight = level.EdgeTileHeight()
			}
			maxX := (x*level.TileWidth + tileWidth) * outWidth / level.Width
			maxY := (y*level.TileHeight + tileHeight) * outHeight / level.Height
			dstRect := image.Rect(minX, minY, maxX, maxY)
			draw.ApproxBiLinear.Scale(out, dstRect, tile, tile.Bounds(), draw.Src, nil)
		}
	}
	return out, nil
}
