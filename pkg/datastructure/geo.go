package datastructure

// BoundingBox. planar extent of a set of nodes
type BoundingBox struct {
	minX, minY float64
	maxX, maxY float64
}

func NewBoundingBox(minX, minY, maxX, maxY float64) *BoundingBox {
	return &BoundingBox{minX: minX,
		minY: minY,
		maxX: maxX,
		maxY: maxY}
}

func (b *BoundingBox) Extend(x, y float64) {
	if x < b.minX {
		b.minX = x
	}
	if y < b.minY {
		b.minY = y
	}
	if x > b.maxX {
		b.maxX = x
	}
	if y > b.maxY {
		b.maxY = y
	}
}

func (b *BoundingBox) GetMin() (float64, float64) {
	return b.minX, b.minY
}

func (b *BoundingBox) GetMax() (float64, float64) {
	return b.maxX, b.maxY
}
