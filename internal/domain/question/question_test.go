package question

import "testing"

func TestNew_TrimsText(t *testing.T) {
	q := New("  Học phí năm 2025?  ")
	if q.Text() != "Học phí năm 2025?" {
		t.Errorf("expected trimmed text, got %q", q.Text())
	}
	if q.Classification() != Unknown {
		t.Errorf("expected new question to be Unknown, got %q", q.Classification())
	}
}

func TestWithClassification(t *testing.T) {
	q := New("SICT có những ngành nào?").WithClassification(InDomain)
	if q.Classification() != InDomain {
		t.Errorf("expected InDomain, got %q", q.Classification())
	}
}

func TestWithClassification_InvalidCollapsesToUnknown(t *testing.T) {
	q := New("x").WithClassification(Classification("banana"))
	if q.Classification() != Unknown {
		t.Errorf("expected invalid classification to collapse to Unknown, got %q", q.Classification())
	}
}

func TestClassification_IsValid(t *testing.T) {
	for _, c := range []Classification{InDomain, OutOfDomain, Unknown} {
		if !c.IsValid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if Classification("").IsValid() {
		t.Error("expected empty classification to be invalid")
	}
}
