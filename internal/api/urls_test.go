package api

import "testing"

func TestJoinAPI(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		endpoint string
		want     string
	}{
		{"bare origin", "https://x.com", "foo", "https://x.com/api/foo"},
		{"origin with trailing slash", "https://x.com/", "foo", "https://x.com/api/foo"},
		{"origin with prefix", "https://x.com/api", "foo", "https://x.com/api/foo"},
		{"origin with prefix and slash", "https://x.com/api/", "foo", "https://x.com/api/foo"},
		{"endpoint with leading slash", "https://x.com", "/foo", "https://x.com/api/foo"},
		{"both decorated", "https://x.com/api/", "/production/generate-script", "https://x.com/api/production/generate-script"},
		{"surrounding whitespace", "  https://x.com  ", " foo ", "https://x.com/api/foo"},
		{"localhost with port", "http://127.0.0.1:5000", "health", "http://127.0.0.1:5000/api/health"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := JoinAPI(tc.base, tc.endpoint)
			if got != tc.want {
				t.Errorf("JoinAPI(%q, %q) = %q, want %q", tc.base, tc.endpoint, got, tc.want)
			}
		})
	}
}

func TestJoinAPISingleOccurrence(t *testing.T) {
	bases := []string{"https://x.com", "https://x.com/", "https://x.com/api", "https://x.com/api/"}
	endpoints := []string{"foo", "/foo", "foo/bar", "/foo/bar"}

	for _, base := range bases {
		for _, endpoint := range endpoints {
			got := JoinAPI(base, endpoint)
			if count := countOccurrences(got, "/api/"); count != 1 {
				t.Errorf("JoinAPI(%q, %q) = %q: %d occurrences of /api/, want 1", base, endpoint, got, count)
			}
			if countOccurrences(got, "//") != 1 { // scheme separator only
				t.Errorf("JoinAPI(%q, %q) = %q: doubled slash outside scheme", base, endpoint, got)
			}
		}
	}
}

func TestMediaURL(t *testing.T) {
	cases := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"media path on api base", "https://x.com/api", "/media/videos/a.mp4", "https://x.com/media/videos/a.mp4"},
		{"media path on bare base", "https://x.com", "/media/audio/b.mp3", "https://x.com/media/audio/b.mp3"},
		{"relative ref", "https://x.com/api/", "images/c.png", "https://x.com/media/images/c.png"},
		{"absolute url passthrough", "https://x.com", "https://cdn.example.com/v.mp4", "https://cdn.example.com/v.mp4"},
		{"empty ref", "https://x.com", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MediaURL(tc.base, tc.ref)
			if got != tc.want {
				t.Errorf("MediaURL(%q, %q) = %q, want %q", tc.base, tc.ref, got, tc.want)
			}
		})
	}
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
