package feedreader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Blog</title>
    <link>https://example.com</link>
    <description>A sample feed</description>
    <item>
      <title>Second post</title>
      <link>https://example.com/post/2</link>
      <description>Newer entry</description>
      <pubDate>Wed, 22 Sep 2021 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>First post</title>
      <link>https://example.com/post/1</link>
      <description>Older entry</description>
      <pubDate>Wed, 22 Sep 2021 07:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

const emptyRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Quiet Blog</title>
    <link>https://example.com</link>
    <description>No entries yet</description>
  </channel>
</rss>`

const sampleAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Blog</title>
  <entry>
    <title>Atom post</title>
    <link href="https://example.com/atom/1"/>
    <summary>Atom summary</summary>
    <updated>2021-09-22T09:00:00Z</updated>
  </entry>
</feed>`

func TestParseRSS(t *testing.T) {
	parsed, err := NewParser().Parse([]byte(sampleRSS))
	require.NoError(t, err)

	require.NotNil(t, parsed.Info)
	assert.Equal(t, "Example Blog", parsed.Info.Title)

	require.Len(t, parsed.Entries, 2)
	assert.Equal(t, "Second post", parsed.Entries[0].Title)
	assert.Equal(t, "https://example.com/post/2", parsed.Entries[0].URL)
	assert.Equal(t, "Newer entry", parsed.Entries[0].Summary)
	assert.Equal(t, time.Date(2021, 9, 22, 9, 0, 0, 0, time.UTC), parsed.Entries[0].PublishedAt.UTC())

	// Document order is preserved: newest first per feed convention.
	assert.True(t, parsed.Entries[0].PublishedAt.After(parsed.Entries[1].PublishedAt))
}

func TestParseEmptyFeed(t *testing.T) {
	parsed, err := NewParser().Parse([]byte(emptyRSS))
	require.NoError(t, err)

	require.NotNil(t, parsed.Info)
	assert.Equal(t, "Quiet Blog", parsed.Info.Title)
	assert.Empty(t, parsed.Entries)
}

func TestParseAtomFallsBackToUpdated(t *testing.T) {
	parsed, err := NewParser().Parse([]byte(sampleAtom))
	require.NoError(t, err)

	require.Len(t, parsed.Entries, 1)
	assert.Equal(t, "Atom summary", parsed.Entries[0].Summary)
	assert.Equal(t, time.Date(2021, 9, 22, 9, 0, 0, 0, time.UTC), parsed.Entries[0].PublishedAt.UTC())
}

func TestParseMalformed(t *testing.T) {
	_, err := NewParser().Parse([]byte("definitely not a feed"))

	var malformed *MalformedFeedError
	require.ErrorAs(t, err, &malformed)
	assert.True(t, IsFeedError(err))
}
