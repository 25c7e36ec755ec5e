package inspect

import "testing"

func TestFirstRequest(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: ":read-resource\n", want: ":read-resource"},
		{text: "# note\n\n  /a=b:add(x=1,\\\n y=2)\n:second\n", want: "/a=b:add(x=1, y=2)"},
		{text: `:op(path=c:\\)` + "\r\n", want: `:op(path=c:\\)`},
		{text: ":op(a=1, \\", want: ":op(a=1,"},
		{text: "\n# only comments\n", want: ""},
	}

	for _, tt := range tests {
		if got := firstRequest(tt.text); got != tt.want {
			t.Errorf("firstRequest(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
