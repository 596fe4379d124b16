package ports

import (
	"strings"
	"testing"
)

func TestNormalizeMaintainer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john@example.com", "john@example.com"},
		{"John@Example.COM", "john@example.com"},
		{"portmgr", "portmgr@freebsd.org"},
		{"  PORTMGR  ", "portmgr@freebsd.org"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeMaintainer(tt.in); got != tt.want {
			t.Errorf("NormalizeMaintainer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndexLineRoundTrip(t *testing.T) {
	line := "foo-1.0|/usr/ports/misc/foo|/usr/local|A foo utility|/usr/ports/misc/foo/pkg-descr|john@example.com|misc devel|a-1.0 b-2.0|c-3.0|https://example.com/foo|d-4.0|e-5.0|f-6.0"
	fields := strings.Split(line, "|")

	rec := &Record{
		Name:       fields[0],
		Origin:     fields[1],
		Prefix:     fields[2],
		Comment:    fields[3],
		DescrFile:  fields[4],
		Maintainer: fields[5],
		Categories: strings.Fields(fields[6]),
		WWW:        fields[9],
		Depends: Depends{
			Extract: strings.Fields(fields[7]),
			Patch:   strings.Fields(fields[8]),
			Fetch:   strings.Fields(fields[10]),
			Build:   strings.Fields(fields[11]),
			Run:     strings.Fields(fields[12]),
		},
	}

	if got := rec.IndexLine(); got != line {
		t.Errorf("IndexLine() = %q, want %q", got, line)
	}
}

func TestVarAbsentIsNotEmpty(t *testing.T) {
	var v Var
	if v.Set {
		t.Error("zero Var should be absent")
	}
	if got := v.Words(); got != nil {
		t.Errorf("absent Var.Words() = %v, want nil", got)
	}

	set := Var{Value: "", Set: true}
	if !set.Set {
		t.Error("explicitly assigned empty Var should be present")
	}
}

func TestDependsAllDeduplicates(t *testing.T) {
	d := Depends{
		Extract: []string{"a-1.0", "b-1.0"},
		Build:   []string{"b-1.0", "c-1.0"},
		Run:     []string{"a-1.0"},
	}
	got := d.All()
	want := []string{"a-1.0", "b-1.0", "c-1.0"}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
