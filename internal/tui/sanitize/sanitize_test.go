package sanitize

import "testing"

func TestDisplay(t *testing.T) {
	cases := map[string]string{
		"plain name":                       "plain name",
		"/opt/app\x1b[2Jwipe":              "/opt/appwipe",
		"\x1b]0;pwned\x07title":            "title",
		"\x1b]8;;http://x\x1b\\link":       "link",
		"\x1b[31mred\x1b[0m":               "red",
		"two\nlines\tand tab":              "two lines and tab",
		"lone \x1b escape":                 "lone   escape",
	}
	for in, want := range cases {
		if got := Display(in); got != want {
			t.Fatalf("Display(%q) = %q, want %q", in, got, want)
		}
	}
}
