package viewer

// WidthPolicy clamps the rendered page width to the viewer container.
type WidthPolicy struct {
	Min    int
	Max    int
	Gutter int
}

// DefaultWidthPolicy matches the dashboard layout: 260..760px with a 32px gutter.
func DefaultWidthPolicy() WidthPolicy {
	return WidthPolicy{Min: 260, Max: 760, Gutter: 32}
}

// PageWidth returns max(Min, min(container-Gutter, Max)). A non-positive
// container width is treated as Max.
func (w WidthPolicy) PageWidth(container int) int {
	if container <= 0 {
		container = w.Max
	}
	return max(w.Min, min(container-w.Gutter, w.Max))
}
