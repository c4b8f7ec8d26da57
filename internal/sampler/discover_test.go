package sampler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_SortsByOrdinal(t *testing.T) {
	client := &fakeClient{
		listFn: func(filter string) ([]string, error) {
			assert.Equal(t, "cache-node-", filter)
			return []string{"proj-cache-node-3-1", "proj-cache-node-1-1", "proj-cache-node-2-1"}, nil
		},
	}
	d := NewDiscoverer(client, "cache-node-", testLogger())

	nodes, err := d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, 1, nodes[0].Ordinal)
	assert.Equal(t, 2, nodes[1].Ordinal)
	assert.Equal(t, 3, nodes[2].Ordinal)
	assert.Equal(t, "proj-cache-node-1-1", nodes[0].Container)
}

func TestDiscover_SkipsUnparsableNames(t *testing.T) {
	client := &fakeClient{
		listFn: func(string) ([]string, error) {
			return []string{"proj-cache-node-1-1", "cache-node-helper", "proj-cache-node-2-1"}, nil
		},
	}
	d := NewDiscoverer(client, "cache-node-", testLogger())

	nodes, err := d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, 1, nodes[0].Ordinal)
	assert.Equal(t, 2, nodes[1].Ordinal)
}

func TestDiscover_ZeroInstancesIsNotAnError(t *testing.T) {
	client := &fakeClient{
		listFn: func(string) ([]string, error) { return nil, nil },
	}
	d := NewDiscoverer(client, "cache-node-", testLogger())

	nodes, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestDiscover_ListFailurePropagates(t *testing.T) {
	client := &fakeClient{
		listFn: func(string) ([]string, error) { return nil, errors.New("daemon unreachable") },
	}
	d := NewDiscoverer(client, "cache-node-", testLogger())

	_, err := d.Discover(context.Background())
	assert.Error(t, err)
}

func TestParseOrdinal(t *testing.T) {
	tests := []struct {
		name    string
		ordinal int
		ok      bool
	}{
		{"proj-cache-node-1-1", 1, true},
		{"cache-node-42", 42, true},
		{"cache-node-", 0, false},
		{"unrelated", 0, false},
		{"cache-node-x1", 0, false},
	}
	for _, tt := range tests {
		n, ok := parseOrdinal(tt.name, "cache-node-")
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.ordinal, n, tt.name)
	}
}
