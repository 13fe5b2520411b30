package writer

import "testing"

func TestParseQueryMixedPairs(t *testing.T) {
	query := `foo=bar&baz&bah=&%3Ckey%3E=%3D%3Dvalue%3D%3D%3`
	got := parseQuery(query, 32768, 4096)

	want := []pair{
		{Key: "foo", Value: "bar"},
		{Key: "bah", Value: ""},
		{Key: "<key>", Value: "==value==%3"},
	}
	if len(got) != len(want) {
		t.Fatalf("parseQuery(%q) = %v (len %d), want %v (len %d)", query, got, len(got), want, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseQueryPlusDecodingAndTrailingNewline(t *testing.T) {
	query := "foo+bar=baz\n"
	got := parseQuery(query, 32768, 4096)
	want := []pair{{Key: "foo bar", Value: "baz"}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("parseQuery(%q) = %v, want %v", query, got, want)
	}
}

func TestParseQueryEmptyInput(t *testing.T) {
	if got := parseQuery("", 32768, 4096); got != nil {
		t.Fatalf("parseQuery(\"\") = %v, want nil", got)
	}
}

func TestParseQueryBareKeyWithoutEqualsIsDiscarded(t *testing.T) {
	got := parseQuery("standalone", 32768, 4096)
	if len(got) != 0 {
		t.Fatalf("parseQuery(%q) = %v, want no pairs (no '=' observed)", "standalone", got)
	}
}

func TestParseQueryRespectsMaxPairs(t *testing.T) {
	got := parseQuery("a=1&b=2&c=3&d=4", 32768, 2)
	if len(got) != 2 {
		t.Fatalf("parseQuery with maxPairs=2 returned %d pairs, want 2", len(got))
	}
	if got[0].Key != "a" || got[1].Key != "b" {
		t.Fatalf("parseQuery with maxPairs=2 = %v, want first two pairs", got)
	}
}

func TestParseQueryRespectsMaxQueryTruncation(t *testing.T) {
	// "ab=cd" truncated to 2 bytes is "ab", which has no '=' at all.
	got := parseQuery("ab=cd", 2, 4096)
	if len(got) != 0 {
		t.Fatalf("parseQuery truncated to 2 bytes = %v, want no pairs", got)
	}
}

func TestUrlDecodeMalformedPercentLeftLiteral(t *testing.T) {
	b := []byte("100%")
	n := urlDecode(b)
	if string(b[:n]) != "100%" {
		t.Fatalf("urlDecode(%q) = %q, want literal passthrough of trailing %%", "100%", string(b[:n]))
	}
}
