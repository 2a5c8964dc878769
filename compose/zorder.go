package compose

import (
	"sort"

	"github.com/jmylchreest/scrim/config"
)

// SortLayers orders layers back-to-front. The configured order applies to
// the owning views' insertion sequence; within one view the background
// always renders immediately behind the foreground, in either order.
func SortLayers(layers []Layer, order config.Order) {
	if len(layers) == 0 {
		return
	}

	sort.SliceStable(layers, func(i, j int) bool {
		a, b := layers[i].Z, layers[j].Z

		if a.Seq != b.Seq {
			less := a.Seq < b.Seq
			if order == config.OrderDescending {
				return !less
			}
			return less
		}

		return a.Background && !b.Background
	})
}

// Flatten expands units into their layers sorted back-to-front.
func Flatten(units []Unit, order config.Order) []Layer {
	layers := make([]Layer, 0, len(units)*2)
	for _, u := range units {
		if u.Background != nil {
			layers = append(layers, *u.Background)
		}
		layers = append(layers, u.Foreground)
	}
	SortLayers(layers, order)
	return layers
}
