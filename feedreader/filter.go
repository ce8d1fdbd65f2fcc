package feedreader

import "time"

// FilterNew truncates a newest-first entry sequence to the prefix strictly
// newer than lastSeen. With no lastSeen, every entry is new.
//
// The walk stops at the first entry at or before lastSeen, relying on the
// document being ordered newest-first. A source that violates that ordering
// has any entries after the inversion silently dropped; we keep that
// behavior rather than sorting defensively, since sorting would change what
// gets ingested from malformed feeds.
func FilterNew(entries []Entry, lastSeen *time.Time) []Entry {
	if lastSeen == nil {
		return entries
	}
	for i, entry := range entries {
		if !entry.PublishedAt.After(*lastSeen) {
			return entries[:i]
		}
	}
	return entries
}
