package resp

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/conditional"
)

// An ETagStrategy decides how a File's entity tag is derived.
type ETagStrategy string

const (
	// ContentHash hashes every byte of the file.
	// The tag changes exactly when the content does, at the cost of reading the file.
	ContentHash ETagStrategy = "content"

	// Fingerprint combines size and modification time without reading the file.
	Fingerprint ETagStrategy = "fingerprint"
)

// Valid asserts s is a known strategy.
func (s ETagStrategy) Valid() error {
	switch s {
	case ContentHash, Fingerprint:
		return nil
	default:
		return fmt.Errorf("%w: etag strategy %q", relay.ErrNotValid, string(s))
	}
}

// computeMetadata describes the file at path per strategy.
func computeMetadata(fsys FileSystem, path string, info fs.FileInfo, strategy ETagStrategy) (conditional.Metadata, error) {
	meta := conditional.Metadata{
		LastModified: info.ModTime(),
		Size:         uint64(info.Size()),
	}

	if strategy == Fingerprint {
		meta.ETag = fingerprint(info)
		return meta, nil
	}

	f, err := fsys.Open(path)
	if err != nil {
		return conditional.Metadata{}, fmt.Errorf("%w: opening %s: %s", relay.ErrIO, path, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return conditional.Metadata{}, fmt.Errorf("%w: hashing %s: %s", relay.ErrIO, path, err)
	}

	meta.ETag = strconv.FormatUint(h.Sum64(), 16)
	return meta, nil
}

func fingerprint(info fs.FileInfo) string {
	return strconv.FormatInt(info.Size(), 16) + "-" + strconv.FormatInt(info.ModTime().UnixNano(), 16)
}

// metadataKey identifies one version of the file at path.
func metadataKey(path string, info fs.FileInfo, strategy ETagStrategy) string {
	return string(strategy) + ":" + path + ":" + fingerprint(info)
}

// loadMetadata describes the file at path, consulting cache when there is one.
func loadMetadata(ctx context.Context, cache MetadataCache, fsys FileSystem, path string, info fs.FileInfo, strategy ETagStrategy) (conditional.Metadata, error) {
	compute := func() (conditional.Metadata, error) { return computeMetadata(fsys, path, info, strategy) }
	if cache == nil {
		return compute()
	}

	return cache.Fetch(ctx, metadataKey(path, info, strategy), compute)
}
