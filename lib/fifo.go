package lib

func reverse(s []TileCoord) {
	for i := len(s)/2 - 1; i >= 0; i-- {
		opp := len(s) - 1 - i
		s[i], s[opp] = s[opp], s[i]
	}
}

type tileFifo struct {
	front, back []TileCoord
}

func (f *tileFifo) Reset() {
	f.front = f.back[:0]
	f.back = f.back[:0]
}
func (f *tileFifo) Empty() bool {
	return len(f.front)+len(f.back) == 0
}
func (f *tileFifo) Enqueue(t TileCoord) {
	f.back = append(f.back, t)
}
func (f *tileFifo) Dequeue() TileCoord {
	lenFirst := len(f.front)
	if lenFirst == 0 {
		lenFirst = len(f.back)
		if lenFirst == 0 {
			panic("Empty queue")
		}
		f.front, f.back = f.back, f.front
		reverse(f.front)
	}
	r := f.front[lenFirst-1]
	f.front = f.front[:lenFirst-1]
	return r
}
