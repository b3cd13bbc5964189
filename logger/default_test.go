package logger

import "testing"

func TestDefault_IsConfigured(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() = nil")
	}
}

func TestSetDefault(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	h := &recordingHandler{}
	SetDefault(New(h))

	Log(1, "via package function", String("k", "v"))
	Logf(2, "answer=%d", 42)

	got := h.all()
	if len(got) != 2 {
		t.Fatalf("received %d records, want 2", len(got))
	}
	if got[0].message != "via package function" || got[1].message != "answer=42" {
		t.Errorf("records = %+v", got)
	}
}

func TestPackageScoped(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	h := &recordingHandler{}
	SetDefault(New(h))

	scope := Scoped(String("request", "r9"))
	Log(0, "in scope")
	scope.Close()

	got := h.all()
	if len(got) != 1 || len(got[0].attrs) != 1 || got[0].attrs[0].Name != "request" {
		t.Errorf("records = %+v", got)
	}
}
