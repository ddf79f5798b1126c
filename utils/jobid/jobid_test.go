package jobid

import (
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	id := New()
	if !strings.HasPrefix(id, "dl_") {
		t.Fatalf("New() = %q, want dl_ prefix", id)
	}
	if id != strings.ToLower(id) {
		t.Errorf("New() = %q, want lowercase", id)
	}
	if !IsValid(id) {
		t.Errorf("New() = %q, IsValid reports false", id)
	}
}

func TestNew_Distinct(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]bool, iterations)
	for i := 0; i < iterations; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("New() generated duplicate ID: %v", id)
		}
		seen[id] = true
	}
}

func TestNew_ConcurrentDistinct(t *testing.T) {
	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := New()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate ID across goroutines: %v", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("expected %d unique IDs, got %d", workers*perWorker, len(seen))
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"generated ID", New(), true},
		{"wrong prefix", "job_01h455vb4pex5vsknk084sn02q", false},
		{"missing prefix", "01h455vb4pex5vsknk084sn02q", false},
		{"not a ulid", "dl_not-a-ulid", false},
		{"empty", "", false},
		{"prefix only", "dl_", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.value); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	id := New()
	parsed, err := Parse(id)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", id, err)
	}
	if got := "dl_" + strings.ToLower(parsed.String()); got != id {
		t.Errorf("Parse roundtrip = %q, want %q", got, id)
	}

	if _, err := Parse("  " + id + ""); err != nil {
		t.Errorf("Parse with surrounding space error = %v", err)
	}
}
