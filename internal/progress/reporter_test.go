package progress

import (
	"bytes"
	"testing"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*LineReporter); !ok {
		t.Error("expected LineReporter when CI is set")
	}
}

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{Out: &buf}
	r.Start(2)
	r.Update(1, "style.css")
	r.Update(2, "index.html")
	r.Finish()

	want := "Building 2 site files\n[1/2] style.css\n[2/2] index.html\nSite build complete\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestBarReporterWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	r := &BarReporter{Out: &buf}
	r.Start(3)
	r.Update(1, "script.js")
	r.Finish()
	if buf.Len() == 0 {
		t.Error("expected bar output")
	}
}

func TestReportersTolerateUpdatesBeforeStart(t *testing.T) {
	var r BarReporter
	r.Update(1, "index.html")
	r.Finish()

	var n Nop
	n.Start(3)
	n.Update(1, "x")
	n.Finish()
}
