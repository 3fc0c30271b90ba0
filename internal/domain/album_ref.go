package domain

import "regexp"

// AlbumRefKind discriminates the two external album identifier schemes the
// site accepts while the catalog migration is in flight.
type AlbumRefKind int

const (
	RefUnknown AlbumRefKind = iota
	// RefMBID is a metadata-registry (MusicBrainz) release-group ID.
	RefMBID
	// RefSpotifyID is a legacy streaming-catalog album ID.
	RefSpotifyID
)

var (
	mbidPattern      = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	spotifyIDPattern = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)
)

// AlbumRef is the tagged union both identifier schemes resolve through.
type AlbumRef struct {
	Kind  AlbumRefKind
	Value string
}

// ParseAlbumRef classifies an opaque identifier. MBIDs are matched
// case-insensitively; anything matching neither pattern is RefUnknown and
// must never trigger a network call.
func ParseAlbumRef(identifier string) AlbumRef {
	if mbidPattern.MatchString(lowerASCII(identifier)) {
		return AlbumRef{Kind: RefMBID, Value: lowerASCII(identifier)}
	}
	if spotifyIDPattern.MatchString(identifier) {
		return AlbumRef{Kind: RefSpotifyID, Value: identifier}
	}
	return AlbumRef{Kind: RefUnknown, Value: identifier}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
