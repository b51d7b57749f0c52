package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"bigfrac/internal/expr"
)

func results(t *testing.T, mode expr.Mode, script string) []expr.Result {
	t.Helper()
	rs, err := expr.Run(context.Background(), expr.NewEnv(mode), "t", script)
	if err != nil {
		t.Fatal(err)
	}
	return rs
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"pretty": FormatPretty, "JSON": FormatJSON, "msgpack": FormatMsgpack, "": FormatPretty} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestPrettyAligned(t *testing.T) {
	files := []File{{
		Path:    "a.calc",
		Results: results(t, expr.ModeFraction, "1/2 + 1/3\n-1\nx = 2; x*10"),
	}}
	var buf bytes.Buffer
	if err := Pretty(&buf, files, Options{ShowSource: true}); err != nil {
		t.Fatal(err)
	}
	want := "== a.calc\n" +
		fmt.Sprintf("%-9s = %s\n", "1/2 + 1/3", "5/6") +
		fmt.Sprintf("%-9s = %s\n", "-1", "-1/1") +
		fmt.Sprintf("%-9s = %s\n", "x*10", "20/1")
	if buf.String() != want {
		t.Fatalf("Pretty output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrettyValuesOnlyAndError(t *testing.T) {
	files := []File{
		{Results: results(t, expr.ModeInt, "7/2")},
		{Path: "bad.calc", Err: errors.New("bad.calc:1:3: boom")},
	}
	var buf bytes.Buffer
	if err := Pretty(&buf, files, Options{}); err != nil {
		t.Fatal(err)
	}
	want := "3\n\n== bad.calc\nerror: bad.calc:1:3: boom\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrettyColorAndWidth(t *testing.T) {
	files := []File{{Results: results(t, expr.ModeFraction, "123456789 + 1")}}
	var buf bytes.Buffer
	if err := Pretty(&buf, files, Options{Color: true, ShowSource: true, Width: 8}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI colour in %q", out)
	}
	if !strings.Contains(out, "12345...") {
		t.Fatalf("expected truncated source in %q", out)
	}
}

func TestJSONLines(t *testing.T) {
	files := []File{
		{Path: "f.calc", Results: results(t, expr.ModeFraction, "2/4"), Err: errors.New("later failure")},
	}
	var buf bytes.Buffer
	if err := JSON(&buf, files); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var rec Record
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec != (Record{File: "f.calc", Source: "2/4", Value: "1/2", Mode: "fraction"}) {
		t.Fatalf("record = %+v", rec)
	}
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Error != "later failure" {
		t.Fatalf("error record = %+v", rec)
	}
}

func TestMsgpackStream(t *testing.T) {
	files := []File{
		{Path: "frac.calc", Results: results(t, expr.ModeFraction, "-6/4")},
		{Path: "int.calc", Results: results(t, expr.ModeInt, "-7/2; 10^25")},
		{Path: "bad.calc", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatMsgpack, files, Options{}); err != nil {
		t.Fatal(err)
	}
	recs, err := ReadMsgpack(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{
		{File: "frac.calc", Source: "-6/4", Value: "-3/2", Mode: "fraction"},
		{File: "int.calc", Source: "-7/2", Value: "-3", Mode: "int"},
		{File: "int.calc", Source: "10^25", Value: "10000000000000000000000000", Mode: "int"},
		{File: "bad.calc", Error: "boom"},
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d records %+v, want %d", len(recs), recs, len(want))
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, recs[i], want[i])
		}
	}
}

func TestFitWideCharacters(t *testing.T) {
	got := fit("数学数学", 5)
	if w := runewidth.StringWidth(got); w > 5 {
		t.Fatalf("fit width = %d, want <= 5 (%q)", w, got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("fit(%q) = %q, want ellipsis", "数学数学", got)
	}
	if got := fit("ab", 5); got != "ab" {
		t.Fatalf("fit kept %q as %q", "ab", got)
	}
	if got := oneLine("1 + \\\n  2"); got != "1 + 2" {
		t.Fatalf("oneLine = %q", got)
	}
}
