package book

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0x463b96181691fc9c", 0x463b96181691fc9c, true},
		{"0X463B96181691FC9C", 0x463b96181691fc9c, true},
		{"463b96181691fc9c", 0x463b96181691fc9c, true},
		{"  823c9b50fd114196 ", 0x823c9b50fd114196, true},
		{"12345", 12345, true},
		{"18446744073709551615", ^uint64(0), true},
		{"", 0, false},
		{"0x", 0, false},
		{"-1", 0, false},
		{"zz3b96181691fc9c", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if tt.ok != (err == nil) {
			t.Fatalf("ParseKey(%q) err = %v", tt.in, err)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("ParseKey(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
	if s := FormatKey(0x0756b94461c50fb0); s != "0x0756b94461c50fb0" {
		t.Fatalf("FormatKey = %q", s)
	}
}
