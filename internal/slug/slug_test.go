package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Gradske Vijesti", "gradske-vijesti"},
		{"croatian diacritics", "Test Članak", "test-clanak"},
		{"all diacritics", "čćšžđ ČĆŠŽĐ", "ccszd-ccszd"},
		{"crossed d", "Đakovo danas", "dakovo-danas"},
		{"underscores", "neka_tema_dana", "neka-tema-dana"},
		{"slashes", "sport/nogomet", "sport-nogomet"},
		{"punctuation stripped", "Rijeka: grad koji teče!", "rijeka-grad-koji-tece"},
		{"multiple spaces", "  multi   word ", "multi-word"},
		{"leading dashes", "--leading--", "leading"},
		{"emoji stripped", "🔥 Vruće vijesti", "vruce-vijesti"},
		{"numbers kept", "Top 10 plaža 2026", "top-10-plaza-2026"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMake_Deterministic(t *testing.T) {
	input := "Ponovljivi Članak"
	first := Make(input)
	for i := 0; i < 10; i++ {
		if got := Make(input); got != first {
			t.Fatalf("Make is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestValid(t *testing.T) {
	valid := []string{"test-clanak", "a", "top-10", "x-2"}
	for _, s := range valid {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "Test", "test clanak", "test_clanak", "-test", "test-", "čćš"}
	for _, s := range invalid {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}
