// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"reflect"
	"sync"
	"testing"
)

// namedDecoder is told apart by name only.
type namedDecoder struct{ name string }

func (d *namedDecoder) Decode(io.Reader) (Source, error) {
	return newGenSource(44100, 2, 100, constant(0)), nil
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	wav := &namedDecoder{"wav"}
	flac := &namedDecoder{"flac"}

	r := NewRegistry()
	r.Register("wav", wav)
	r.Register("FLAC", flac)

	tests := []struct {
		key    string
		want   Decoder
		wantOK bool
	}{
		{"wav", wav, true},
		{"WAV", wav, true},
		{"flac", flac, true},
		{"Flac", flac, true},
		{"mp3", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		got, ok := r.Get(tt.key)
		if ok != tt.wantOK {
			t.Errorf("Get(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Get(%q) returned %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestRegistry_ReplaceAlias(t *testing.T) {
	t.Parallel()

	first := &namedDecoder{"first"}
	second := &namedDecoder{"second"}

	r := NewRegistry()
	r.Register("aif", first)
	r.Register("AIF", second)

	if got, _ := r.Get("aif"); got != second {
		t.Errorf("Get(aif) = %v, want the later registration", got)
	}
	if got := r.Formats(); !reflect.DeepEqual(got, []string{"aif"}) {
		t.Errorf("Formats() = %v, want a single key", got)
	}
}

func TestRegistry_FormatsSorted(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if got := r.Formats(); len(got) != 0 {
		t.Errorf("empty registry Formats() = %v", got)
	}

	for _, f := range []string{"wav", "ogg", "AIFF", "mp3"} {
		r.Register(f, &namedDecoder{f})
	}

	want := []string{"aiff", "mp3", "ogg", "wav"}
	if got := r.Formats(); !reflect.DeepEqual(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	dec := &namedDecoder{"wav"}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register("wav", dec)
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Get("wav")
			_ = r.Formats()
		}()
	}
	wg.Wait()

	if got, ok := r.Get("wav"); !ok || got != dec {
		t.Errorf("Get(wav) = %v, %v after concurrent use", got, ok)
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	r := NewRegistry()
	r.Register("wav", &namedDecoder{"wav"})

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.Get("WAV")
	}
}
