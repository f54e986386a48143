package filter

import "testing"

func track(index int, name string) Candidate {
	return Candidate{Index: index, Name: name, Mixdown: name == "MixL" || name == "MixR"}
}

func TestNilExpressionIncludesEverything(t *testing.T) {
	for _, c := range []Candidate{{Index: 0}, {Index: 4}, track(9, "MixL"), track(3, "Boom")} {
		if !Evaluate(nil, c) {
			t.Fatalf("expected %+v to be included without a filter", c)
		}
	}
	if !All().Includes(Candidate{Index: 42}) {
		t.Fatal("zero filter should include everything")
	}
}

func TestEmptyExpressionExcludesEverything(t *testing.T) {
	empty := ""
	if Evaluate(&empty, Candidate{Index: 1}) {
		t.Fatal("expression without tokens should exclude")
	}
	if Evaluate(ptr(", ,"), Candidate{Index: 1}) {
		t.Fatal("separators alone should exclude")
	}
}

func TestFoldLastTokenWins(t *testing.T) {
	tests := []struct {
		expr string
		c    Candidate
		want bool
	}{
		{"4,!4", Candidate{Index: 4}, false},
		{"!4,4", Candidate{Index: 4}, true},
		{"!8", Candidate{Index: 8}, false},
		{"!8", Candidate{Index: 3}, true},
		{"4", Candidate{Index: 4}, true},
		{"4", Candidate{Index: 5}, false},
		{"4,6", Candidate{Index: 6}, true},
		{"4,6", Candidate{Index: 4}, false},
		{"1-3,!2", Candidate{Index: 2}, false},
		{"1-3,!2", Candidate{Index: 4}, true},
		{"all,!Boom", track(1, "Boom"), false},
		{"all,!Boom", track(2, "Lav"), true},
	}
	for _, tt := range tests {
		if got := Evaluate(ptr(tt.expr), tt.c); got != tt.want {
			t.Errorf("Evaluate(%q, %+v) = %v, want %v", tt.expr, tt.c, got, tt.want)
		}
	}
}

func TestMultiDigitNumberIsOneToken(t *testing.T) {
	f := Parse("10")
	for index, want := range map[int]bool{1: false, 0: false, 9: false, 10: true} {
		if got := f.Includes(track(index, "MixR")); got != want {
			t.Errorf("10 includes %d = %v, want %v", index, got, want)
		}
	}
}

func TestRangeIsInclusive(t *testing.T) {
	f := Parse("1-3")
	for index, want := range map[int]bool{0: false, 1: true, 2: true, 3: true, 4: false} {
		if got := f.Includes(Candidate{Index: index}); got != want {
			t.Errorf("1-3 includes %d = %v, want %v", index, got, want)
		}
	}
}

func TestReversedRangeMatchesNothing(t *testing.T) {
	f := Parse("5-2")
	for index := 0; index <= 6; index++ {
		if f.Includes(Candidate{Index: index}) {
			t.Fatalf("reversed range should not include %d", index)
		}
	}
}

func TestKeywords(t *testing.T) {
	mixdown := Parse("mixdown")
	if !mixdown.Includes(track(9, "MixL")) || !mixdown.Includes(track(10, "MixR")) {
		t.Fatal("mixdown should include MixL and MixR")
	}
	if mixdown.Includes(track(1, "Boom")) {
		t.Fatal("mixdown should exclude regular tracks")
	}
	if !Parse("MIXDOWN").Includes(track(9, "MixL")) {
		t.Fatal("mixdown keyword should be case-insensitive")
	}
	if !Parse("ALL").Includes(Candidate{Index: 12}) {
		t.Fatal("all keyword should be case-insensitive")
	}
	if Parse("!all").Includes(Candidate{Index: 12}) {
		t.Fatal("negated all should exclude")
	}
}

func TestWordIsCaseSensitiveSubstring(t *testing.T) {
	f := Parse("Lav")
	if !f.Includes(track(2, "Lav Anna")) {
		t.Fatal("expected substring match")
	}
	if f.Includes(track(3, "lavalier")) {
		t.Fatal("substring match should be case-sensitive")
	}
	if f.Includes(Candidate{Index: 1}) {
		t.Fatal("takes carry no name and never match a word")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1-3", "1-3"},
		{"!4, 6", "!4,6"},
		{"12,!10-11", "12,!10-11"},
		{"Boom-2", "Boom-2"},
		{"2-Boom", "2,-Boom"},
		{"4foo", "4,foo"},
		{"!,!x", "!x"},
		{"mixdown;all", "mixdown,all"},
	}
	for _, tt := range tests {
		if got := Join(Tokenize(tt.expr)); got != tt.want {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestTokenKinds(t *testing.T) {
	tokens := Tokenize("1-3,!4,Boom")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Kind != KindRange || tokens[0].Low != 1 || tokens[0].High != 3 {
		t.Fatalf("unexpected range token %+v", tokens[0])
	}
	if tokens[1].Kind != KindNumber || !tokens[1].Invert || tokens[1].Low != 4 {
		t.Fatalf("unexpected number token %+v", tokens[1])
	}
	if tokens[2].Kind != KindWord || tokens[2].Word != "Boom" {
		t.Fatalf("unexpected word token %+v", tokens[2])
	}
}

func TestFromOptional(t *testing.T) {
	if FromOptional("", false).Active() {
		t.Fatal("unset expression should be inactive")
	}
	if !FromOptional("", true).Active() {
		t.Fatal("set expression should be active")
	}
	if got := FromOptional("1", true).String(); got != "1" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	expr := ptr("1-5,!3,7")
	for take := 0; take < 10; take++ {
		first := Evaluate(expr, Candidate{Index: take})
		for i := 0; i < 3; i++ {
			if Evaluate(expr, Candidate{Index: take}) != first {
				t.Fatalf("evaluation of take %d changed between calls", take)
			}
		}
	}
}

func ptr(s string) *string { return &s }
