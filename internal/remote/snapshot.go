package remote

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"
)

// Layer sizing for sharded snapshots. Small stores fit one layer; large ones
// split so pulls can download and unpack in parallel.
const (
	LayerTargetSize = 5 * 1024 * 1024
)

// PackShards serializes a snapshot into one or more layer payloads. Entries
// are sorted by key, then greedily grouped until a shard reaches the target
// size, so the same snapshot always packs the same way.
func PackShards(entries map[string][]byte) [][]byte {
	keys := sortedKeys(entries)

	var shards [][]byte
	var buf bytes.Buffer
	for _, key := range keys {
		appendEntry(&buf, key, entries[key])
		if buf.Len() >= LayerTargetSize {
			shards = append(shards, bytes.Clone(buf.Bytes()))
			buf.Reset()
		}
	}
	if buf.Len() > 0 || len(shards) == 0 {
		shards = append(shards, bytes.Clone(buf.Bytes()))
	}
	return shards
}

// Entry wire format: [keyLen u32][key][dataLen u64][data], big-endian.
func appendEntry(buf *bytes.Buffer, key string, data []byte) {
	var n32 [4]byte
	var n64 [8]byte

	binary.BigEndian.PutUint32(n32[:], uint32(len(key)))
	buf.Write(n32[:])
	buf.WriteString(key)

	binary.BigEndian.PutUint64(n64[:], uint64(len(data)))
	buf.Write(n64[:])
	buf.Write(data)
}

// UnpackShard parses one layer payload back into (key, document) pairs.
func UnpackShard(data []byte) (map[string][]byte, error) {
	entries := make(map[string][]byte)
	for len(data) > 0 {
		if len(data) < 4 {
			return nil, fmt.Errorf("truncated shard: %d trailing bytes", len(data))
		}
		keyLen := binary.BigEndian.Uint32(data)
		data = data[4:]

		if uint64(len(data)) < uint64(keyLen)+8 {
			return nil, fmt.Errorf("truncated shard entry header")
		}
		key := string(data[:keyLen])
		data = data[keyLen:]

		dataLen := binary.BigEndian.Uint64(data)
		data = data[8:]

		if uint64(len(data)) < dataLen {
			return nil, fmt.Errorf("truncated shard entry %q: want %d bytes, have %d", key, dataLen, len(data))
		}
		buf := make([]byte, dataLen)
		copy(buf, data[:dataLen])
		entries[key] = buf
		data = data[dataLen:]
	}
	return entries, nil
}

// SnapshotHash is a deterministic digest over the whole snapshot, recorded in
// the image labels and verified on pull.
func SnapshotHash(entries map[string][]byte) string {
	h := sha256.New()
	var n64 [8]byte
	for _, key := range sortedKeys(entries) {
		h.Write([]byte(key))
		binary.BigEndian.PutUint64(n64[:], uint64(len(entries[key])))
		h.Write(n64[:])
		h.Write(entries[key])
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}

func sortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
