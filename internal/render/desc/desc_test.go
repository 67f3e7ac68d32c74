package desc

import (
	"reflect"
	"testing"
)

func TestTextPlainPassthrough(t *testing.T) {
	got := Text("Slow-braised short rib over polenta.")
	want := "Slow-braised short rib over polenta."
	if got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestTextStripsMarkup(t *testing.T) {
	raw := "<p>Hand-rolled <b>pasta</b> with sage butter.</p><p>Served hot.</p>"
	got := Text(raw)
	want := "Hand-rolled pasta with sage butter.\n\nServed hot."
	if got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestTextDropsScriptAndStyle(t *testing.T) {
	raw := "<style>p{color:red}</style><p>Crispy chicken sandwich.</p><script>alert(1)</script>"
	got := Text(raw)
	if got != "Crispy chicken sandwich." {
		t.Fatalf("Text = %q", got)
	}
}

func TestTextCollapsesWhitespace(t *testing.T) {
	got := Text("  Tuna   tostada\twith  avocado  ")
	if got != "Tuna tostada with avocado" {
		t.Fatalf("Text = %q", got)
	}
}

func TestWrapBreaksAtWidth(t *testing.T) {
	got := Wrap("smoky birria tacos with consomme on the side", 16)
	want := []string{
		"smoky birria",
		"tacos with",
		"consomme on the",
		"side",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Wrap = %#v, want %#v", got, want)
	}
}

func TestWrapSplitsOversizedWord(t *testing.T) {
	got := Wrap("aaaaaaaaaa bb", 4)
	want := []string{"aaaa", "aaaa", "aa", "bb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Wrap = %#v, want %#v", got, want)
	}
}

func TestWrapKeepsParagraphBreaks(t *testing.T) {
	got := Wrap("first paragraph\n\nsecond", 40)
	want := []string{"first paragraph", "", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Wrap = %#v, want %#v", got, want)
	}
}

func TestLinesEmptyDescription(t *testing.T) {
	if got := Lines("   ", 20); got != nil {
		t.Fatalf("Lines = %#v, want nil", got)
	}
}
