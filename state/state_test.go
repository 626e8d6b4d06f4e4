package state

import (
	"errors"
	"os"
	"testing"

	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/types/travel"
)

func TestStateRoundtrip(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	fc := &travel.FilterConfig{
		TravelModes: []travel.TravelModeRange{
			{StartTime: 100, EndTime: 200, Mode: travel.ModeTrain},
		},
	}
	if err := st.StoreKVMarshalJSON(params.StateKey_FilterConfig, fc); err != nil {
		t.Fatal(err)
	}

	got := &travel.FilterConfig{}
	if err := st.ReadKVUnmarshalJSON(params.StateKey_FilterConfig, got); err != nil {
		t.Fatal(err)
	}
	if len(got.TravelModes) != 1 || got.TravelModes[0].Mode != travel.ModeTrain {
		t.Errorf("roundtrip: %+v", got)
	}
}

func TestStateMissingKey(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	var v any
	if err := st.ReadKVUnmarshalJSON([]byte("nope"), &v); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}

	if err := st.StoreKVMarshalJSON([]byte("k"), map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if err := st.ReadKVUnmarshalJSON([]byte("nope"), &v); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
