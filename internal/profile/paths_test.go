package profile

import (
	"strings"
	"testing"
)

func TestPathsAreProfileScoped(t *testing.T) {
	paths := []struct {
		desc string
		got  string
		want string
	}{
		{"credentials", CredentialsPath("work"), "profiles/work/credentials.toml"},
		{"cart db", CartDBPath("work"), "profiles/work/cart.db"},
		{"lock", LockPath("work"), "profiles/work/LOCK"},
		{"log", LogPath("work"), "profiles/work/logs/cmp.log"},
	}
	for _, p := range paths {
		if !strings.HasSuffix(p.got, p.want) {
			t.Errorf("%s path = %q, want suffix %q", p.desc, p.got, p.want)
		}
	}
}

func TestConfigPathOutsideProfiles(t *testing.T) {
	if strings.Contains(ConfigPath(), "profiles") {
		t.Errorf("config path %q should not be profile-scoped", ConfigPath())
	}
}
