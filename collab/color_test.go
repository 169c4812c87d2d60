package collab

import "testing"

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "#ff8800", want: "#ff8800", ok: true},
		{in: "#FF8800", want: "#ff8800", ok: true},
		{in: "#f80", want: "#ff8800", ok: true},
		{in: "ff8800"},
		{in: "orange"},
		{in: ""},
	}
	for _, tc := range cases {
		got, _, err := parseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("parseColor(%q) err=%v, want ok=%v", tc.in, err, tc.ok)
		}
		if got != tc.want {
			t.Fatalf("parseColor(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLabelForeground(t *testing.T) {
	cases := map[string]string{
		"#ffff00": "#000000",
		"#ffffff": "#000000",
		"#000080": "#ffffff",
		"#cc0000": "#ffffff",
	}
	for in, want := range cases {
		_, c, err := parseColor(in)
		if err != nil {
			t.Fatalf("parseColor(%q): %v", in, err)
		}
		if got := labelForeground(c); got != want {
			t.Fatalf("labelForeground(%s)=%s, want %s", in, got, want)
		}
	}
}
