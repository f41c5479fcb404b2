package march

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/machlab/marchexec/pkg/bootparam"
)

func cmdlineSource(t *testing.T, content string) *bootparam.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmdline")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return &bootparam.Source{Path: path}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		flagTag    string
		configTag  string
		cmdline    string
		want       string
		wantOrigin Origin
	}{
		{
			name:       "flag wins over everything",
			flagTag:    "v4",
			configTag:  "v3",
			cmdline:    "march=v2",
			want:       "v4",
			wantOrigin: OriginFlag,
		},
		{
			name:       "config wins over cmdline",
			configTag:  "v3",
			cmdline:    "march=v2",
			want:       "v3",
			wantOrigin: OriginConfig,
		},
		{
			name:       "cmdline discovery",
			cmdline:    "BOOT_IMAGE=/boot/vmlinuz march=v2 quiet",
			want:       "v2",
			wantOrigin: OriginCmdline,
		},
		{
			name:       "bare march token is skipped",
			cmdline:    "quiet march march=v2 splash",
			want:       "v2",
			wantOrigin: OriginCmdline,
		},
		{
			name:       "no tag anywhere",
			cmdline:    "quiet splash",
			want:       "",
			wantOrigin: OriginNone,
		},
		{
			name:       "empty march value counts as absent",
			cmdline:    "march= quiet",
			want:       "",
			wantOrigin: OriginNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.flagTag, tt.configTag, cmdlineSource(t, tt.cmdline))
			if got.Tag != tt.want {
				t.Errorf("Select() tag = %q, want %q", got.Tag, tt.want)
			}
			if got.Origin != tt.wantOrigin {
				t.Errorf("Select() origin = %q, want %q", got.Origin, tt.wantOrigin)
			}
		})
	}
}

func TestSelectUnreadableSource(t *testing.T) {
	src := &bootparam.Source{Path: filepath.Join(t.TempDir(), "missing")}

	got := Select("", "", src)
	if got.Tag != "" || got.Origin != OriginNone {
		t.Errorf("Select() = %+v, want empty selection on unreadable source", got)
	}
}

func TestSelectExplicitIgnoresUnreadableSource(t *testing.T) {
	src := &bootparam.Source{Path: filepath.Join(t.TempDir(), "missing")}

	got := Select("v3", "", src)
	if got.Tag != "v3" || got.Origin != OriginFlag {
		t.Errorf("Select() = %+v, want explicit v3 regardless of boot source", got)
	}
}
