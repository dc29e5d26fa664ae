package remote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testEntries() map[string][]byte {
	return map[string][]byte{
		"a/b/1":     []byte("one"),
		"a/b/2":     []byte("two"),
		"a/b/x/y/1": {},
		"top":       []byte("root level"),
	}
}

func TestShardRoundTrip(t *testing.T) {
	entries := testEntries()

	shards := PackShards(entries)
	require.Len(t, shards, 1, "small snapshot packs into one shard")

	got, err := UnpackShard(shards[0])
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

func TestPackShardsDeterministic(t *testing.T) {
	a := PackShards(testEntries())
	b := PackShards(testEntries())
	require.Equal(t, a, b)
}

func TestPackShardsEmpty(t *testing.T) {
	shards := PackShards(nil)
	require.Len(t, shards, 1)

	got, err := UnpackShard(shards[0])
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestUnpackShardTruncated(t *testing.T) {
	shards := PackShards(testEntries())

	for _, cut := range []int{1, 3, 6, len(shards[0]) - 1} {
		_, err := UnpackShard(shards[0][:cut])
		require.Error(t, err, "cut at %d", cut)
	}
}

func TestSnapshotHash(t *testing.T) {
	entries := testEntries()

	h1 := SnapshotHash(entries)
	h2 := SnapshotHash(testEntries())
	require.Equal(t, h1, h2, "hash is deterministic")

	entries["a/b/1"] = []byte("changed")
	require.NotEqual(t, h1, SnapshotHash(entries))
}
