package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID          int      `json:"id" yaml:"id"`
	Student     string   `json:"student" yaml:"student"`
	CompletedAt string   `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Notes       []string `json:"notes" yaml:"notes"`
}

type texty struct{}

func (texty) Text() string { return "hola" }

func TestWrite_Formats(t *testing.T) {
	t.Parallel()

	v := sample{ID: 3, Student: "Ana \"A\"", CompletedAt: "x", Notes: []string{"a\nb"}}
	cases := []struct {
		format string
		pretty bool
		want   string
	}{
		{"json", false, `{"id":3,"student":"Ana \"A\"","completedAt":"x","notes":["a\nb"]}` + "\n"},
		{"edn", false, `{:completed-at "x" :id 3 :notes ["a\nb"] :student "Ana \"A\""}` + "\n"},
		{"edn", true, "{\n  :completed-at \"x\"\n  :id 3\n  :notes [\n    \"a\\nb\"\n  ]\n  :student \"Ana \\\"A\\\"\"\n}\n"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := Write(&buf, v, tc.format, tc.pretty); err != nil {
			t.Fatalf("Write(%s): %v", tc.format, err)
		}
		if got := buf.String(); got != tc.want {
			t.Fatalf("Write(%s, pretty=%v)=\n%q\nwant\n%q", tc.format, tc.pretty, got, tc.want)
		}
	}
}

func TestWrite_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, sample{ID: 1, Student: "Ana", Notes: []string{"a", "b"}}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "id: 1\nstudent: Ana\nnotes:\n  - a\n  - b\n"
	if buf.String() != want {
		t.Fatalf("got\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWrite_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, texty{}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "hola\n" {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, map[string]int{"a": 1}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "a: 1\n" {
		t.Fatalf("expected yaml fallback; got %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, 1, "xml", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error; got %v", err)
	}
	if Valid("xml") || !Valid("EDN") {
		t.Fatalf("unexpected Valid results")
	}
}

func TestEDNKeyword(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"id":          "id",
		"completedAt": "completed-at",
		"sessionID":   "session-id",
		"case_id":     "case-id",
	} {
		if got := ednKeyword(in); got != want {
			t.Fatalf("ednKeyword(%q)=%q, want %q", in, got, want)
		}
	}
}
