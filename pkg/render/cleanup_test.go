package render

import "testing"

func TestCleanup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes leftover variables",
			input: "Bonjour {prenom} {nom_famille}!",
			want:  "Bonjour  !",
		},
		{
			name:  "removes dotted paths",
			input: "Ref: {facture.numero}",
			want:  "Ref: ",
		},
		{
			name:  "keeps conditional keywords",
			input: "{IF} broken {ELSE} still broken {ENDIF}",
			want:  "{IF} broken {ELSE} still broken {ENDIF}",
		},
		{
			name:  "keyword check is case insensitive",
			input: "{endif} tail",
			want:  "{endif} tail",
		},
		{
			name:  "removes leftover guards",
			input: "Start {a && b && some payload} end",
			want:  "Start  end",
		},
		{
			name:  "plain html untouched",
			input: "<div class=\"x\">body</div>",
			want:  "<div class=\"x\">body</div>",
		},
		{
			name:  "css braces untouched",
			input: "<style>.a { color: red; }</style>",
			want:  "<style>.a { color: red; }</style>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Cleanup(tc.input); got != tc.want {
				t.Fatalf("Cleanup(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
