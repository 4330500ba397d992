package arena_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/densekit/arena"
)

// ExampleArena shows the create → compute → release lifecycle.
func ExampleArena() {
	a := arena.New()
	x, _ := a.CreateFromBuffer(2, 2, []float64{1, 2, 3, 4})
	y, _ := a.CreateFromBuffer(2, 2, []float64{5, 6, 7, 8})
	p, _ := a.Mul(x, y)
	rows, _ := a.ToRows(p)
	fmt.Println(rows)

	_ = a.Release(p)
	_, err := a.ToRows(p)
	fmt.Println(errors.Is(err, arena.ErrStaleHandle), a.Live())
	// Output:
	// [[19 22] [43 50]]
	// true 2
}
