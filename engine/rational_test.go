package engine

import "testing"

func TestNewRational(t *testing.T) {
	tests := []struct {
		name    string
		num     int64
		den     int64
		want    string
		wantErr bool
	}{
		{name: "already reduced", num: 1, den: 2, want: "1/2"},
		{name: "reduces via gcd", num: 4, den: 8, want: "1/2"},
		{name: "zero numerator normalises", num: 0, den: 7, want: "0"},
		{name: "whole number", num: 3, den: 3, want: "1/1"},
		{name: "zero denominator", num: 1, den: 0, wantErr: true},
		{name: "negative numerator", num: -1, den: 2, wantErr: true},
		{name: "negative denominator", num: 1, den: -2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRational(tt.num, tt.den)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewRational(%d, %d) expected error", tt.num, tt.den)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRational(%d, %d) error = %v", tt.num, tt.den, err)
			}
			if got.String() != tt.want {
				t.Errorf("NewRational(%d, %d) = %s, want %s", tt.num, tt.den, got, tt.want)
			}
		})
	}
}

func TestParseRational(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1/2", want: "1/2"},
		{in: "2/3", want: "2/3"},
		{in: " 1 / 6 ", want: "1/6"},
		{in: "4/8", want: "1/2"},
		{in: "1", want: "1/1"},
		{in: "0", want: "0"},
		{in: "", wantErr: true},
		{in: "1/0", wantErr: true},
		{in: "one/two", wantErr: true},
		{in: "-1/2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRational(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRational(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRational(%q) error = %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseRational(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestRationalArithmetic(t *testing.T) {
	half := MustRational(1, 2)
	third := MustRational(1, 3)
	quarter := MustRational(1, 4)

	t.Run("add reduces", func(t *testing.T) {
		if got := quarter.Add(quarter); !got.Equal(half) {
			t.Errorf("1/4 + 1/4 = %s, want 1/2", got)
		}
	})

	t.Run("add chains stay exact", func(t *testing.T) {
		sum := Zero()
		for i := 0; i < 6; i++ {
			sum = sum.Add(MustRational(1, 6))
		}
		if !sum.Equal(One()) {
			t.Errorf("six sixths = %s, want 1", sum)
		}
	})

	t.Run("subtract", func(t *testing.T) {
		if got := half.Sub(third); !got.Equal(MustRational(1, 6)) {
			t.Errorf("1/2 - 1/3 = %s, want 1/6", got)
		}
	})

	t.Run("subtract clamps to zero", func(t *testing.T) {
		if got := third.Sub(half); !got.IsZero() {
			t.Errorf("1/3 - 1/2 = %s, want 0", got)
		}
	})

	t.Run("multiply", func(t *testing.T) {
		if got := half.Mul(third); !got.Equal(MustRational(1, 6)) {
			t.Errorf("1/2 * 1/3 = %s, want 1/6", got)
		}
	})

	t.Run("divide", func(t *testing.T) {
		if got := half.Div(quarter); !got.Equal(MustRational(2, 1)) {
			t.Errorf("1/2 / 1/4 = %s, want 2/1", got)
		}
	})

	t.Run("divide by zero fraction yields zero", func(t *testing.T) {
		if got := half.Div(Zero()); !got.IsZero() {
			t.Errorf("1/2 / 0 = %s, want 0", got)
		}
	})

	t.Run("zero dividend yields zero", func(t *testing.T) {
		if got := Zero().Div(half); !got.IsZero() {
			t.Errorf("0 / 1/2 = %s, want 0", got)
		}
	})
}

func TestRationalCmp(t *testing.T) {
	tests := []struct {
		name string
		a, b Rational
		want int
	}{
		{name: "equal after reduction", a: MustRational(2, 4), b: MustRational(1, 2), want: 0},
		{name: "less", a: MustRational(1, 3), b: MustRational(1, 2), want: -1},
		{name: "greater", a: MustRational(5, 6), b: MustRational(3, 4), want: 1},
		{name: "over-allocation detected", a: MustRational(4, 3), b: One(), want: 1},
		{name: "zero against zero value", a: Zero(), b: Rational{}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cmp(tt.b); got != tt.want {
				t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRationalZeroValue(t *testing.T) {
	// The uninitialised zero value must behave as the zero fraction.
	var r Rational
	if !r.IsZero() {
		t.Error("zero value should be the zero fraction")
	}
	if got := r.Add(MustRational(1, 2)); !got.Equal(MustRational(1, 2)) {
		t.Errorf("0 + 1/2 = %s, want 1/2", got)
	}
	if r.String() != "0" {
		t.Errorf("zero value String() = %q, want \"0\"", r.String())
	}
	if r.Den() != 1 {
		t.Errorf("zero value Den() = %d, want 1", r.Den())
	}
}

func TestRationalText(t *testing.T) {
	r := MustRational(2, 3)
	text, err := r.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error = %v", err)
	}
	if string(text) != "2/3" {
		t.Errorf("MarshalText = %q, want \"2/3\"", text)
	}

	var parsed Rational
	if err := parsed.UnmarshalText([]byte("5/10")); err != nil {
		t.Fatalf("UnmarshalText error = %v", err)
	}
	if !parsed.Equal(MustRational(1, 2)) {
		t.Errorf("UnmarshalText(\"5/10\") = %s, want 1/2", parsed)
	}

	if err := parsed.UnmarshalText([]byte("x/y")); err == nil {
		t.Error("UnmarshalText(\"x/y\") expected error")
	}
}
