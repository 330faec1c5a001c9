package sanitize

import "testing"

func TestPlainText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Spring Sale", "Spring Sale"},
		{"tags stripped", "<b>Spring</b> Sale", "Spring Sale"},
		{"script stripped", `<script>alert(1)</script>Promo`, "Promo"},
		{"entities survive", "AT&T Promo", "AT&T Promo"},
		{"whitespace trimmed", "  Promo  ", "Promo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PlainText(tc.input); got != tc.want {
				t.Errorf("PlainText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
