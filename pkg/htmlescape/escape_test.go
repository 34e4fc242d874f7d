package htmlescape

import "testing"

func TestString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "Red", want: "Red"},
		{name: "ampersand", input: "Salt & Pepper", want: "Salt &amp; Pepper"},
		{name: "tags", input: "<b>bold</b>", want: "&lt;b&gt;bold&lt;/b&gt;"},
		{name: "quotes", input: `"Tom's"`, want: "&quot;Tom&apos;s&quot;"},
		{name: "existing named entity", input: "Fish &amp; Chips", want: "Fish &amp; Chips"},
		{name: "existing numeric entity", input: "&#8364;5", want: "&#8364;5"},
		{name: "existing hex entity", input: "&#x20AC;5", want: "&#x20AC;5"},
		{name: "unknown entity", input: "&bogus; x", want: "&amp;bogus; x"},
		{name: "legacy prefix", input: "&notit; x", want: "&amp;notit; x"},
		{name: "dangling ampersand", input: "a &", want: "a &amp;"},
		{name: "invalid utf8", input: "a\xffb", want: "a�b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := String(tc.input); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestStringIsStable(t *testing.T) {
	once := String(`Ben & Jerry's <Best>`)
	if twice := String(once); twice != once {
		t.Fatalf("escaping escaped text changed it: %q -> %q", once, twice)
	}
}
