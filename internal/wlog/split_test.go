package wlog

import (
	"bytes"
	"testing"
)

func TestSplitRecord(t *testing.T) {
	tests := []struct {
		name       string
		rec        []byte
		embedded   bool
		wantTarget []byte
		wantHeader []byte
		wantHas    bool
	}{
		{
			name:       "disabled mode keeps sentinel as data",
			rec:        []byte("GET-header\x01/index.html"),
			embedded:   false,
			wantTarget: []byte("GET-header\x01/index.html"),
		},
		{
			name:       "enabled splits on first sentinel",
			rec:        []byte("GET-header\x01/index.html"),
			embedded:   true,
			wantTarget: []byte("/index.html"),
			wantHeader: []byte("GET-header"),
			wantHas:    true,
		},
		{
			name:       "enabled without sentinel is target only",
			rec:        []byte("/plain"),
			embedded:   true,
			wantTarget: []byte("/plain"),
		},
		{
			name:       "leading sentinel yields empty header",
			rec:        []byte("\x01/index.html"),
			embedded:   true,
			wantTarget: []byte("/index.html"),
			wantHeader: []byte{},
			wantHas:    true,
		},
		{
			name:       "later sentinels stay in target",
			rec:        []byte("H: 1\x01/a\x01/b"),
			embedded:   true,
			wantTarget: []byte("/a\x01/b"),
			wantHeader: []byte("H: 1"),
			wantHas:    true,
		},
		{
			name:       "trailing sentinel yields empty target",
			rec:        []byte("H: 1\x01"),
			embedded:   true,
			wantTarget: []byte{},
			wantHeader: []byte("H: 1"),
			wantHas:    true,
		},
		{
			name:       "empty record",
			rec:        []byte{},
			embedded:   true,
			wantTarget: []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, header, has := SplitRecord(tt.rec, tt.embedded)

			if !bytes.Equal(target, tt.wantTarget) {
				t.Errorf("target = %q, want %q", target, tt.wantTarget)
			}
			if !bytes.Equal(header, tt.wantHeader) {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if has != tt.wantHas {
				t.Errorf("hasHeader = %v, want %v", has, tt.wantHas)
			}
		})
	}
}
