package config

import (
	"reflect"
	"testing"
)

func TestDispatchWorkers(t *testing.T) {
	tests := []struct {
		env  string
		want int
	}{
		{"", 4},
		{"8", 8},
		{"0", 4},
		{"-3", 4},
		{"many", 4},
	}

	for _, tc := range tests {
		t.Setenv("DISPATCH_WORKERS", tc.env)
		if got := DispatchWorkers(); got != tc.want {
			t.Errorf("DISPATCH_WORKERS=%q: got %d, want %d", tc.env, got, tc.want)
		}
	}
}

func TestCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example ,,https://b.example")
	want := []string{"https://a.example", "https://b.example"}
	if got := CORSOrigins(); !reflect.DeepEqual(got, want) {
		t.Fatalf("CORSOrigins() = %v, want %v", got, want)
	}

	t.Setenv("CORS_ORIGINS", "")
	if got := CORSOrigins(); len(got) != 0 {
		t.Fatalf("CORSOrigins() = %v, want none", got)
	}
}

func TestPortDefault(t *testing.T) {
	t.Setenv("PORT", "")
	if got := Port(); got != "8080" {
		t.Fatalf("Port() = %q, want 8080", got)
	}
}
