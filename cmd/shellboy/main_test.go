package main

import (
	"errors"
	"testing"
)

func TestROMPath(t *testing.T) {
	ask := func(path string, err error) func() (string, error) {
		return func() (string, error) { return path, err }
	}
	boom := errors.New("boom")

	for name, tc := range map[string]struct {
		flag    string
		ask     func() (string, error)
		want    string
		wantErr bool
	}{
		"flag":         {flag: "tetris.gb", ask: ask("other.gb", nil), want: "tetris.gb"},
		"dialog":       {ask: ask("picked.gb", nil), want: "picked.gb"},
		"cancelled":    {ask: ask("", nil), wantErr: true},
		"dialog error": {ask: ask("", boom), wantErr: true},
		"no dialog":    {wantErr: true},
		"flag no ask":  {flag: "tetris.gb", want: "tetris.gb"},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := romPath(tc.flag, tc.ask)
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
