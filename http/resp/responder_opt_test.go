package resp

import (
	"bytes"
	"log"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay/http/payload"
	"github.com/xy-planning-network/relay/http/stream"
	"github.com/xy-planning-network/relay/logger"
)

func TestNewResponderDefaults(t *testing.T) {
	d := NewResponder()

	require.NotNil(t, d.logger)
	require.Nil(t, d.rootUrl)
	require.True(t, d.jsonOpts.EscapeHTML)
	require.Equal(t, OSFileSystem{}, d.file.FileSystem)
	require.NotNil(t, d.file.Mime)
	require.Equal(t, ContentHash, d.file.ETag)
	require.Equal(t, stream.DefaultChunkSize, d.file.ChunkSize)
	require.Zero(t, d.file.RateLimit)
}

func TestResponderWithChunkSize(t *testing.T) {
	tcs := []struct {
		name     string
		size     int
		expected int
	}{
		{"Negative", -1, stream.DefaultChunkSize},
		{"Zero", 0, stream.DefaultChunkSize},
		{"Small", 512, 512},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := NewResponder(WithChunkSize(tc.size))
			require.Equal(t, tc.expected, d.file.ChunkSize)
		})
	}
}

func TestResponderWithDownloadRate(t *testing.T) {
	require.Equal(t, 4096, NewResponder(WithDownloadRate(4096)).file.RateLimit)
	require.Zero(t, NewResponder(WithDownloadRate(-5)).file.RateLimit)
}

func TestResponderWithETagStrategy(t *testing.T) {
	require.Equal(t, Fingerprint, NewResponder(WithETagStrategy(Fingerprint)).file.ETag)
	require.Equal(t, ContentHash, NewResponder(WithETagStrategy("md5")).file.ETag)
}

func TestResponderWithFileSystem(t *testing.T) {
	fsys := new(OSFileSystem)
	d := NewResponder(WithFileSystem(fsys))
	require.Equal(t, fsys, d.file.FileSystem)
}

func TestResponderWithJSONOptions(t *testing.T) {
	expected := payload.Options{Indent: "\t", RejectInvalidUTF8: true}
	d := NewResponder(WithJSONOptions(expected))
	require.Equal(t, expected, d.jsonOpts)
}

func TestResponderWithLogger(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := log.New(b, "", log.LstdFlags)
	ll := logger.New(logger.WithLogger(l))
	d := NewResponder(WithLogger(ll))

	msg := "unit testing is fun!"

	// Act
	d.logger.Info(msg, nil)

	// Assert
	actual := b.String()
	require.Contains(t, actual, "[INFO]")
	require.Contains(t, actual, "responder_opt_test.go")
	require.Contains(t, actual, msg)
}

func TestResponderWithMetadataCache(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	d := NewResponder(WithMetadataCache(c))
	require.Equal(t, c, d.file.Cache)
}

func TestResponderWithMimeGuesser(t *testing.T) {
	d := NewResponder(WithMimeGuesser(func(string) string { return "text/x-test" }))
	require.Equal(t, "text/x-test", d.file.Mime("any"))
}

func TestResponderWithRootUrl(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		u, _ := url.ParseRequestURI("https://example.com")
		expected := u.String()
		d := NewResponder(WithRootUrl("https://example.com"))
		require.Equal(t, expected, d.rootUrl.String())
	})

	t.Run("Null-Byte", func(t *testing.T) {
		expected := "https://example.com"
		d := NewResponder(WithRootUrl(string('\x00')))
		require.Equal(t, expected, d.rootUrl.String())
	})
}
