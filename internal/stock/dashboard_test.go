package stock

import "testing"

func TestSummarize(t *testing.T) {
	s := Summarize(MockItems(), "2026-02-17")

	if s.Total != 8 {
		t.Errorf("expected 8 products, got %d", s.Total)
	}
	// tomatoes, olive oil, flour, parmesan, oregano
	if s.Low != 5 {
		t.Errorf("expected 5 at or below minimum, got %d", s.Low)
	}
	if s.Out != 1 {
		t.Errorf("expected 1 out of stock, got %d", s.Out)
	}
	if s.UpdatedToday != 5 {
		t.Errorf("expected 5 updated on 2026-02-17, got %d", s.UpdatedToday)
	}
}

func TestUrgentListsOutBeforeLow(t *testing.T) {
	got := ids(Urgent(MockItems()))
	want := []string{"7", "6", "4", "8", "1"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestByCategory(t *testing.T) {
	stats := ByCategory(MockItems())
	if len(stats) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(stats))
	}
	if stats[0].Name != "vegetables" || stats[0].LowStock != 1 {
		t.Errorf("unexpected first category %+v", stats[0])
	}
	for _, c := range stats {
		if c.Name == "dairy" && (len(c.Items) != 2 || c.LowStock != 1) {
			t.Errorf("unexpected dairy stats %+v", c)
		}
	}
}
