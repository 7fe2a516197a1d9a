package lib

// SeedTile returns the tile whose footprint contains the view
// direction at the given level, the starting point for VisibleTiles.
// It returns ErrEmptyViewport when the view has no area, as "visible
// tiles" is undefined then.
func SeedTile(g Geometry, v *View, level int) (TileCoord, error) {
	width, height := v.Size()
	if width <= 0 || height <= 0 {
		return TileCoord{}, ErrEmptyViewport
	}
	return g.ClosestTile(v.Yaw(), v.Pitch(), level), nil
}

// VisibleTiles flood fills the tile grid of the given level starting
// from the seed tile, expanding through neighbor relationships and
// pruning with the view's visibility test. The tile grid is connected
// (toroidal in x, a strip in y), so every visible tile is reachable
// from the seed.
func VisibleTiles(g Geometry, v *View, level int) ([]TileCoord, error) {
	seed, err := SeedTile(g, v, level)
	if err != nil {
		return nil, err
	}
	pyramid := g.Pyramid()
	visited := map[uint64]struct{}{seed.Key(): {}}
	var queue tileFifo
	queue.Enqueue(seed)
	var visible []TileCoord
	for !queue.Empty() {
		tile := queue.Dequeue()
		if !v.SeesTile(g, tile) {
			continue
		}
		visible = append(visible, tile)
		for _, neighbor := range pyramid.Neighbors(tile) {
			if _, ok := visited[neighbor.Key()]; ok {
				continue
			}
			visited[neighbor.Key()] = struct{}{}
			queue.Enqueue(neighbor)
		}
	}
	return visible, nil
}
