package main

import (
	"reflect"
	"testing"
)

func TestRewriteScriptArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"cae"},
			want: []string{"cae"},
		},
		{
			name: "script first token",
			in:   []string{"cae", "shift.cae"},
			want: []string{"cae", "run", "shift.cae"},
		},
		{
			name: "script after value flag",
			in:   []string{"cae", "--dir", "./out", "shift.cae"},
			want: []string{"cae", "--dir", "./out", "run", "shift.cae"},
		},
		{
			name: "script after equals flag",
			in:   []string{"cae", "--format=json", "shift.cae"},
			want: []string{"cae", "--format=json", "run", "shift.cae"},
		},
		{
			name: "script after bool flag",
			in:   []string{"cae", "--pretty", "shift.cae"},
			want: []string{"cae", "--pretty", "run", "shift.cae"},
		},
		{
			name: "script after double dash",
			in:   []string{"cae", "--dir", "./out", "--", "shift.cae"},
			want: []string{"cae", "--dir", "./out", "--", "run", "shift.cae"},
		},
		{
			name: "run flag moves after run",
			in:   []string{"cae", "--keep-going", "--dir", "./out", "shift.cae"},
			want: []string{"cae", "--dir", "./out", "run", "--keep-going", "shift.cae"},
		},
		{
			name: "run flag with value",
			in:   []string{"cae", "--keep-going=true", "shift.cae"},
			want: []string{"cae", "run", "--keep-going=true", "shift.cae"},
		},
		{
			name: "run flag without script untouched",
			in:   []string{"cae", "--keep-going", "wat"},
			want: []string{"cae", "--keep-going", "wat"},
		},
		{
			name: "explicit run not rewritten",
			in:   []string{"cae", "run", "shift.cae"},
			want: []string{"cae", "run", "shift.cae"},
		},
		{
			name: "value flag named like a script",
			in:   []string{"cae", "--log-file", "x.cae"},
			want: []string{"cae", "--log-file", "x.cae"},
		},
		{
			name: "bare extension not a script",
			in:   []string{"cae", ".cae"},
			want: []string{"cae", ".cae"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"cae", "wat"},
			want: []string{"cae", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rewriteScriptArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteScriptArgs(%v)=%v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
