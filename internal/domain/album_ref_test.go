package domain

import "testing"

func TestParseAlbumRefMBID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3f1a2b4c-0d5e-4f6a-8b7c-9d0e1f2a3b4c", "3f1a2b4c-0d5e-4f6a-8b7c-9d0e1f2a3b4c"},
		{"3F1A2B4C-0D5E-4F6A-8B7C-9D0E1F2A3B4C", "3f1a2b4c-0d5e-4f6a-8b7c-9d0e1f2a3b4c"},
	}
	for _, tc := range cases {
		ref := ParseAlbumRef(tc.in)
		if ref.Kind != RefMBID {
			t.Fatalf("ParseAlbumRef(%q) kind = %v, want RefMBID", tc.in, ref.Kind)
		}
		if ref.Value != tc.want {
			t.Fatalf("ParseAlbumRef(%q) value = %q, want %q", tc.in, ref.Value, tc.want)
		}
	}
}

func TestParseAlbumRefSpotifyID(t *testing.T) {
	in := "4aawyAB9vmqN3uQ7FjRGTy"
	ref := ParseAlbumRef(in)
	if ref.Kind != RefSpotifyID {
		t.Fatalf("ParseAlbumRef(%q) kind = %v, want RefSpotifyID", in, ref.Kind)
	}
	if ref.Value != in {
		t.Fatalf("spotify ids are not normalized; got %q", ref.Value)
	}
}

func TestParseAlbumRefUnknown(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"4aawyAB9vmqN3uQ7FjRGT",    // 21 chars
		"4aawyAB9vmqN3uQ7FjRGTyx",  // 23 chars
		"4aawyAB9vmqN3uQ7FjRGT-",   // 22 chars but punctuation
		"3f1a2b4c-0d5e-4f6a-8b7c",  // truncated mbid
		"3f1a2b4c0d5e4f6a8b7c9d0e1f2a3b4c", // mbid without dashes is not an mbid
		"zz1a2b4c-0d5e-4f6a-8b7c-9d0e1f2a3b4c",
	}
	for _, in := range cases {
		if ref := ParseAlbumRef(in); ref.Kind != RefUnknown {
			t.Fatalf("ParseAlbumRef(%q) kind = %v, want RefUnknown", in, ref.Kind)
		}
	}
}

func TestVoteEntityTypeValid(t *testing.T) {
	for _, et := range []VoteEntityType{EntitySimlrEdge, EntityPost, EntityComment} {
		if !et.Valid() {
			t.Fatalf("%q should be valid", et)
		}
	}
	for _, et := range []VoteEntityType{"", "ALBUM", "post"} {
		if et.Valid() {
			t.Fatalf("%q should be invalid", et)
		}
	}
}
