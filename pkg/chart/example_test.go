package chart_test

import (
	"fmt"

	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/dataset"
)

func Example() {
	opts := chart.DefaultOptions()
	opts.ThrottleInterval = 0 // deliver notifications synchronously

	c := chart.New(opts)
	cars := []dataset.Item{
		{ID: 0, Values: map[string]dataset.Value{"Speed": dataset.Number(100), "Make": dataset.String("audi")}},
		{ID: 1, Values: map[string]dataset.Value{"Speed": dataset.Number(200), "Make": dataset.String("bmw")}},
		{ID: 2, Values: map[string]dataset.Value{"Speed": dataset.Number(300), "Make": dataset.String("vw")}},
	}
	if err := c.SetData(cars); err != nil {
		fmt.Println(err)
		return
	}
	c.OnSelectionChanged(func(ids []int) {
		fmt.Println("selected:", ids)
	})

	c.SetRangeBrushValues("Speed", 150, 250)
	c.ClearAllBrushes()
	// Output:
	// selected: [1]
	// selected: [0 1 2]
}
