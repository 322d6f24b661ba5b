package headers

import (
	"net/http"
	"testing"
)

func TestCompose(t *testing.T) {
	base := Bag{"Accept": "application/json", "Authorization": "from-base", "X-Shared": "base"}
	auth := Bag{"Authorization": "Bearer: abc"}
	override := Bag{"Authorization": "Basic: xyz", "X-Shared": "override"}

	t.Run("OverrideWins", func(t *testing.T) {
		got := Compose(base, auth, override)
		if got["Authorization"] != "Basic: xyz" {
			t.Errorf("Expected Authorization 'Basic: xyz', got '%s'", got["Authorization"])
		}
		if got["X-Shared"] != "override" {
			t.Errorf("Expected X-Shared 'override', got '%s'", got["X-Shared"])
		}
	})

	t.Run("AuthBeatsBase", func(t *testing.T) {
		got := Compose(base, auth, nil)
		if got["Authorization"] != "Bearer: abc" {
			t.Errorf("Expected Authorization 'Bearer: abc', got '%s'", got["Authorization"])
		}
	})

	t.Run("KeepsAllKeys", func(t *testing.T) {
		got := Compose(base, auth, Bag{"X-Extra": "1"})
		for _, k := range []string{"Accept", "Authorization", "X-Shared", "X-Extra"} {
			if _, ok := got[k]; !ok {
				t.Errorf("Expected key %s in composed headers", k)
			}
		}
		if len(got) != 4 {
			t.Errorf("Expected 4 headers, got %d", len(got))
		}
	})

	t.Run("CaseInsensitiveCollision", func(t *testing.T) {
		got := Compose(nil, auth, Bag{"authorization": "lower"})
		if got["Authorization"] != "lower" {
			t.Errorf("Expected override to win regardless of case, got '%s'", got["Authorization"])
		}
		if len(got) != 1 {
			t.Errorf("Expected a single Authorization key, got %v", got)
		}
	})

	t.Run("NilInputs", func(t *testing.T) {
		got := Compose(nil, nil, nil)
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil bag, got %v", got)
		}
	})

	t.Run("InputsUntouched", func(t *testing.T) {
		Compose(base, auth, override)
		if base["Authorization"] != "from-base" || auth["Authorization"] != "Bearer: abc" {
			t.Error("Compose modified its inputs")
		}
	})
}

func TestBag_Apply(t *testing.T) {
	h := http.Header{}
	h.Set("Accept", "text/plain")
	Bag{"accept": "application/json", "X-Trace": "1"}.Apply(h)

	if got := h.Get("Accept"); got != "application/json" {
		t.Errorf("Expected Accept 'application/json', got '%s'", got)
	}
	if got := h.Get("X-Trace"); got != "1" {
		t.Errorf("Expected X-Trace '1', got '%s'", got)
	}
}

func TestBag_Clone(t *testing.T) {
	var nilBag Bag
	if nilBag.Clone() != nil {
		t.Error("Expected nil clone of nil bag")
	}

	b := Bag{"A": "1"}
	c := b.Clone()
	c["A"] = "2"
	if b["A"] != "1" {
		t.Error("Clone shares storage with the original")
	}
}
