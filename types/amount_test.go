package types

import (
	"encoding/json"
	"testing"
)

func TestAmountConstructors(t *testing.T) {
	tests := []struct {
		name    string
		amount  Amount
		display string
	}{
		{"Units", Units(4900), "4900"},
		{"Units zero", Units(0), "0"},
		{"Zero value", Amount{}, "0"},
		{"Parse", MustParse("15000000000000000000"), "15000000000000000000"},
		{"Parse small", MustParse("7"), "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.amount.String() != tt.display {
				t.Errorf("String: got %s, want %s", tt.amount.String(), tt.display)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Amount
		expected Amount
	}{
		{"Add", func() Amount { return Units(100).Add(Units(200)) }, Units(300)},
		{"Sub", func() Amount { return Units(500).Sub(Units(200)) }, Units(300)},
		{"Mul", func() Amount { return Units(100).Mul(Units(3)) }, Units(300)},
		{"Div", func() Amount { return Units(900).Div(Units(3)) }, Units(300)},
		{"Div truncates", func() Amount { return Units(7).Div(Units(2)) }, Units(3)},
		{"Mod", func() Amount { return Units(7).Mod(Units(2)) }, Units(1)},
		{"Complex", func() Amount {
			return Units(1000).Add(Units(500)).Mul(Units(2)).Sub(Units(1000))
		}, Units(2000)},
		{"Min", func() Amount { return Units(3).Min(Units(9)) }, Units(3)},
		{"Max", func() Amount { return Units(3).Max(Units(9)) }, Units(9)},
		{"Sum", func() Amount { return Sum(Units(1), Units(2), Units(3)) }, Units(6)},
		{"Sum empty", func() Amount { return Sum() }, Amount{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAmountComparisons(t *testing.T) {
	a, b := Units(5), Units(9)

	if !a.LessThan(b) {
		t.Error("5 should be less than 9")
	}
	if !b.GreaterThan(a) {
		t.Error("9 should be greater than 5")
	}
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a) != 0 {
		t.Error("Cmp disagrees with ordering")
	}
	if !Units(0).IsZero() || a.IsZero() {
		t.Error("IsZero misreports")
	}
}

func TestAmountSubUnderflow(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for underflow")
		}
	}()

	_ = Units(100).Sub(Units(200))
}

func TestAmountAddOverflow(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for overflow")
		}
	}()

	_ = MaxAmount().Add(Units(1))
}

func TestAmountDivisionByZero(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for division by zero")
		}
	}()

	_ = Units(100).Div(Units(0))
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals int
		want     string
		wantErr  bool
	}{
		{"whole tokens", "1500000000", 10, "15000000000000000000", false},
		{"fractional", "1.5", 2, "150", false},
		{"no scaling", "42", 0, "42", false},
		{"sub-unit rejected", "0.001", 2, "", true},
		{"negative rejected", "-5", 2, "", true},
		{"garbage rejected", "abc", 2, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.input, tt.decimals)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseUnits(%q, %d): expected error", tt.input, tt.decimals)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseUnits(%q, %d): %v", tt.input, tt.decimals, err)
			}
			if got.String() != tt.want {
				t.Errorf("Got %s, want %s", got.String(), tt.want)
			}
		})
	}
}

func TestAmountFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   Amount
		decimals int
		want     string
	}{
		{"whole", Units(15000), 3, "15"},
		{"fractional", Units(15500), 3, "15.5"},
		{"sub-unit", Units(7), 3, "0.007"},
		{"zero decimals", Units(42), 0, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.Format(tt.decimals); got != tt.want {
				t.Errorf("Format(%d): got %s, want %s", tt.decimals, got, tt.want)
			}
		})
	}
}

func TestAmountJSON(t *testing.T) {
	original := MustParse("115792089237316195423570985008687907853269984665640564039457584007913129639935")

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Amount
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("Round trip: got %v, want %v", decoded, original)
	}
}

func TestAmountUint64(t *testing.T) {
	v, ok := Units(42).Uint64()
	if !ok || v != 42 {
		t.Errorf("Uint64: got (%d, %v), want (42, true)", v, ok)
	}

	if _, ok := MaxAmount().Uint64(); ok {
		t.Error("Uint64 should report overflow for MaxAmount")
	}
}
