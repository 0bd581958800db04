package objstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"segview.dev/segview/storage/objstore"
)

func TestRequestUsage(t *testing.T) {
	usage := &objstore.RequestUsage{}
	for range 1_000 {
		usage.AddRead()
	}
	assert.Equal(t, "$0.0004", usage.TotalCost())
	assert.Equal(t, int64(1_000), usage.Reads())

	usage = &objstore.RequestUsage{}
	for range 1_000_000 {
		usage.AddRead()
	}
	assert.Equal(t, "$0.40", usage.TotalCost())

	usage = &objstore.RequestUsage{}
	usage.AddRead()
	assert.Equal(t, "$0.0000", usage.TotalCost())

	usage = &objstore.RequestUsage{}
	for range 1_000 {
		usage.AddList()
	}
	assert.Equal(t, "$0.0050", usage.TotalCost())
	assert.Equal(t, int64(1_000), usage.Lists())
}
