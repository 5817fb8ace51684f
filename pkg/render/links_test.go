package render

import "testing"

func TestHyperlinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "link with text",
			input: "{LINK https://ecole.fr Notre site}",
			want:  `<a href="https://ecole.fr">Notre site</a>`,
		},
		{
			name:  "link without text uses url",
			input: "{LINK https://ecole.fr}",
			want:  `<a href="https://ecole.fr">https://ecole.fr</a>`,
		},
		{
			name:  "email",
			input: "Contact: {EMAIL contact@ecole.fr}",
			want:  `Contact: <a href="mailto:contact@ecole.fr">contact@ecole.fr</a>`,
		},
		{
			name:  "phone strips spaces in href only",
			input: "{PHONE +33 1 23 45 67 89}",
			want:  `<a href="tel:+33123456789">+33 1 23 45 67 89</a>`,
		},
		{
			name:  "sms",
			input: "{SMS +33612345678}",
			want:  `<a href="sms:+33612345678">+33612345678</a>`,
		},
		{
			name:  "multiple tags",
			input: "{EMAIL a@b.fr} / {SMS +336}",
			want:  `<a href="mailto:a@b.fr">a@b.fr</a> / <a href="sms:+336">+336</a>`,
		},
		{
			name:  "no tags",
			input: "rien ici",
			want:  "rien ici",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Hyperlinks(tc.input); got != tc.want {
				t.Fatalf("Hyperlinks(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
