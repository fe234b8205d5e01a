package money

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0 FCFA"},
		{500, "500 FCFA"},
		{12500, "12 500 FCFA"},
		{1234567, "1 234 567 FCFA"},
		{-300, "-300 FCFA"},
		{-1234567, "-1 234 567 FCFA"},
	}

	for _, tt := range tests {
		if got := Format(tt.amount); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
