package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Fatalf("unknown theme = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	prev := Active
	t.Cleanup(func() { Active = prev })

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q, want terminal", Active.Name)
	}
}

func TestSeriesColorWraps(t *testing.T) {
	th := FlexokiDark
	n := len(th.Series)
	if th.SeriesColor(n) != th.SeriesColor(0) {
		t.Fatal("SeriesColor should wrap")
	}
	if (Theme{Accent: "1"}).SeriesColor(3) != "1" {
		t.Fatal("empty series should fall back to accent")
	}
}

func TestNamesMatchAll(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len(Names) = %d, want %d", len(names), len(All))
	}
	for i, n := range names {
		if ByName(n).Name != All[i].Name {
			t.Fatalf("Names()[%d] = %q does not resolve", i, n)
		}
	}
}

func TestHuhThemeBuilds(t *testing.T) {
	for _, th := range All {
		if th.Huh() == nil {
			t.Fatalf("%s: Huh() returned nil", th.Name)
		}
	}
}
