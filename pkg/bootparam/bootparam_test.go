package bootparam

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCmdline(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmdline")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestSource_Lookup(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		want    string
		wantOK  bool
	}{
		{
			name:    "march among other parameters",
			content: "BOOT_IMAGE=/boot/vmlinuz root=/dev/sda1 march=v3 quiet\n",
			key:     "march",
			want:    "v3",
			wantOK:  true,
		},
		{
			name:    "first match wins",
			content: "march=v2 march=v4",
			key:     "march",
			want:    "v2",
			wantOK:  true,
		},
		{
			name:    "bare key token does not stop the scan",
			content: "quiet march march=v2 splash",
			key:     "march",
			want:    "v2",
			wantOK:  true,
		},
		{
			name:    "key-only token never matches",
			content: "quiet splash",
			key:     "quiet",
			wantOK:  false,
		},
		{
			name:    "valued token with empty value matches",
			content: "march= quiet",
			key:     "march",
			want:    "",
			wantOK:  true,
		},
		{
			name:    "value containing equals sign",
			content: "root=PARTUUID=6f38be44-01 ro",
			key:     "root",
			want:    "PARTUUID=6f38be44-01",
			wantOK:  true,
		},
		{
			name:    "key absent",
			content: "root=/dev/sda1 quiet",
			key:     "march",
			wantOK:  false,
		},
		{
			name:    "key is not matched as a prefix of another key",
			content: "marchmallow=yes",
			key:     "march",
			wantOK:  false,
		},
		{
			name:    "empty file",
			content: "",
			key:     "march",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &Source{Path: writeCmdline(t, tt.content)}

			got, ok, err := src.Lookup(tt.key)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.key, err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSource_LookupMissingFile(t *testing.T) {
	src := &Source{Path: filepath.Join(t.TempDir(), "does-not-exist")}

	_, ok, err := src.Lookup("march")
	if err == nil {
		t.Fatal("expected error for missing boot-parameter file")
	}
	if ok {
		t.Error("ok should be false on read failure")
	}
}

func TestSource_LookupInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmdline")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	src := &Source{Path: path}
	if _, _, err := src.Lookup("march"); err == nil {
		t.Fatal("expected error for invalid UTF-8 content")
	}
}

func TestSource_DefaultPath(t *testing.T) {
	src := &Source{}
	if got := src.path(); got != DefaultPath {
		t.Errorf("path() = %q, want %q", got, DefaultPath)
	}
}
