package buildinfo

import (
	"runtime/debug"
	"testing"
)

func withVars(t *testing.T, version, commit, date string) {
	t.Helper()
	prevV, prevC, prevD, prevRead := Version, Commit, Date, readBuildInfo
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() {
		Version, Commit, Date, readBuildInfo = prevV, prevC, prevD, prevRead
	})
}

func fakeInfo(version string, settings ...debug.BuildSetting) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: version}, Settings: settings}, true
	}
}

func TestResolve(t *testing.T) {
	vcs := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc123"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	}

	tests := []struct {
		name                  string
		version, commit, date string
		info                  func() (*debug.BuildInfo, bool)
		want                  [3]string
	}{
		{
			name:    "go install",
			version: unset, commit: "none", date: "unknown",
			info: fakeInfo("v0.3.1", vcs...),
			want: [3]string{"v0.3.1", "abc123", "2026-01-02T03:04:05Z"},
		},
		{
			name:    "ldflags win",
			version: "v1.0.0", commit: "deadbeef", date: "2026-10-01",
			info: fakeInfo("v0.3.1", vcs...),
			want: [3]string{"v1.0.0", "deadbeef", "2026-10-01"},
		},
		{
			name:    "devel build",
			version: unset, commit: "none", date: "unknown",
			info: fakeInfo("(devel)"),
			want: [3]string{unset, "none", "unknown"},
		},
		{
			name:    "no build info",
			version: unset, commit: "none", date: "unknown",
			info: func() (*debug.BuildInfo, bool) { return nil, false },
			want: [3]string{unset, "none", "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVars(t, tt.version, tt.commit, tt.date)
			readBuildInfo = tt.info

			Resolve()
			if got := [3]string{Version, Commit, Date}; got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	withVars(t, "v1.0.0", "abc123", "2026-01-02")
	want := "{{.Name}} version v1.0.0\ncommit: abc123\nbuilt: 2026-01-02\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}
