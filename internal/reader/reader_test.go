package reader

import "testing"

func TestParseSimpleList(t *testing.T) {
	n, err := Parse("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != List {
		t.Fatalf("expected List, got %v", n.Kind)
	}
	if len(n.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(n.Children))
	}
	if n.Children[0].Kind != Symbol || n.Children[0].Text != "+" {
		t.Fatalf("expected symbol '+', got %+v", n.Children[0])
	}
	if n.Children[1].Kind != Int || n.Children[1].Text != "1" {
		t.Fatalf("expected int 1, got %+v", n.Children[1])
	}
}

func TestParseKeywordAndFloat(t *testing.T) {
	n, err := Parse("(= x :int32 3.5)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kw := n.Children[2]
	if kw.Kind != Keyword || kw.Text != "int32" {
		t.Fatalf("expected keyword int32, got %+v", kw)
	}
	fl := n.Children[3]
	if fl.Kind != Float || fl.Text != "3.5" {
		t.Fatalf("expected float 3.5, got %+v", fl)
	}
}

func TestParseUnclosedList(t *testing.T) {
	_, err := Parse("(+ 1 2")
	if err == nil {
		t.Fatal("expected error for unclosed list")
	}
}

func TestParseUnexpectedClose(t *testing.T) {
	_, err := Parse(")")
	if err == nil {
		t.Fatal("expected error for stray closing paren")
	}
}

func TestParseDiscard(t *testing.T) {
	n, err := Parse("(1 #_2 3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Children) != 3 {
		t.Fatalf("expected 3 children (discard still occupies a slot), got %d", len(n.Children))
	}
	if n.Children[1].Kind != Discard {
		t.Fatalf("expected Discard node, got %+v", n.Children[1])
	}
}

func TestParseSet(t *testing.T) {
	n, err := Parse("#{1 2 3}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != Set {
		t.Fatalf("expected Set, got %v", n.Kind)
	}
	if len(n.Children) != 3 {
		t.Fatalf("expected 3 members, got %d", len(n.Children))
	}
}

func TestParseTagged(t *testing.T) {
	n, err := Parse("#foo 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != Tagged {
		t.Fatalf("expected Tagged, got %v", n.Kind)
	}
	if n.Children[0].Text != "foo" {
		t.Fatalf("expected tag name foo, got %q", n.Children[0].Text)
	}
}

func TestLeadingDotFloatInvalid(t *testing.T) {
	if validFloat(".5") {
		t.Fatal("leading-dot float should be rejected per the resolved grammar")
	}
	if !validFloat("0.5") {
		t.Fatal("0.5 should be a valid float")
	}
}

func TestValidSymbolSlash(t *testing.T) {
	if !validSymbol("/") {
		t.Fatal("bare '/' should be a valid symbol")
	}
	if validSymbol("a/b/c") {
		t.Fatal("more than one '/' should be rejected")
	}
}

func TestPprintRoundTripsQuotes(t *testing.T) {
	n := Node{Kind: List, Children: []Node{
		{Kind: String, Text: `say "hi"`},
	}}
	got := Pprint(n)
	want := `("say \"hi\"")`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
