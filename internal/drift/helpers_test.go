package drift

import (
	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
)

func ints(name string, vals ...int64) dataset.Column {
	values := make([]dataset.Value, len(vals))
	for i, v := range vals {
		values[i] = dataset.Int(v)
	}
	return dataset.NewColumn(name, dataset.Int64, values...)
}

func strs(name string, vals ...string) dataset.Column {
	values := make([]dataset.Value, len(vals))
	for i, v := range vals {
		values[i] = dataset.Str(v)
	}
	return dataset.NewColumn(name, dataset.String, values...)
}

func floats(name string, vals ...float64) dataset.Column {
	values := make([]dataset.Value, len(vals))
	for i, v := range vals {
		values[i] = dataset.Float(v)
	}
	return dataset.NewColumn(name, dataset.Float64, values...)
}
