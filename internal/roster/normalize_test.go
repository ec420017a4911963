package roster

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Jane Smith", "jane smith"},
		{"punctuation and suffix", "O'Brien, Jr.", "obrien jr"},
		{"mixed case", "OBRIEN JR", "obrien jr"},
		{"accents stripped", "José Álvarez", "jos lvarez"},
		{"digits stripped", "Player 23", "player"},
		{"leading trailing space", "  Jane Smith  ", "jane smith"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.expected {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{"Jane A. Smith", "O'Brien, Jr.", "MÜLLER", "del Potro-Smith"}
	for _, in := range inputs {
		once := NormalizeName(in)
		twice := NormalizeName(once)
		if once != twice {
			t.Errorf("NormalizeName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeName_CaseAndPunctuationInsensitive(t *testing.T) {
	if NormalizeName("O'Brien, Jr.") != NormalizeName("obrien jr") {
		t.Errorf("expected %q == %q",
			NormalizeName("O'Brien, Jr."), NormalizeName("obrien jr"))
	}
}

func TestCanonicalYear(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"freshman", "Fr"},
		{"Freshman", "Fr"},
		{"fr.", "Fr"},
		{"So.", "So"},
		{"JUNIOR", "Jr"},
		{"senior", "Sr"},
		{"Graduate", "Grad"},
		{"5th year", "Grad"},
		{"Fifth Year", "Grad"},
		{"Redshirt Freshman", "RS Fr"},
		{"redshirt sophomore", "RS So"},
		{"", Unknown},
		{"this is far too long to be a year in school label", Unknown},
		// Unrecognized vocabulary comes back title-cased, not discarded
		{"second-year", "Second-Year"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CanonicalYear(tt.input); got != tt.expected {
				t.Errorf("CanonicalYear(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPlausibleHometown(t *testing.T) {
	long := make([]byte, MaxHometownLen+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"normal", "Los Angeles, CA", true},
		{"international", "Herzliya, Israel", true},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"unknown marker", Unknown, false},
		{"over length", string(long), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlausibleHometown(tt.input); got != tt.expected {
				t.Errorf("PlausibleHometown(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRescueHometown(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		expected string
	}{
		{
			"city state in noise",
			"6-2 185 lbs Junior Los Angeles, CA Brentwood School",
			"Los Angeles, CA",
		},
		{
			"redshirt year prefix stripped",
			"6-4 200 lbs Redshirt Junior San Diego, CA Torrey Pines",
			"San Diego, CA",
		},
		{
			"no year prefix",
			"hails from Ann Arbor, MI and plays lefty",
			"Ann Arbor, MI",
		},
		{
			"no shape present",
			"just some page furniture text",
			Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RescueHometown(tt.context); got != tt.expected {
				t.Errorf("RescueHometown(%q) = %q, want %q", tt.context, got, tt.expected)
			}
		})
	}
}
