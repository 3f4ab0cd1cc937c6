package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "no flags keeps defaults",
			args: nil,
			want: Config{ServerEndpointAddr: "127.0.0.1:50051", SessionDBPath: "bynderctl.db", OnlineCheckInterval: 3 * time.Second},
		},
		{
			name: "all flags",
			args: []string{"-a", "admin:1", "-db", "/var/lib/s.db", "-i", "7"},
			want: Config{ServerEndpointAddr: "admin:1", SessionDBPath: "/var/lib/s.db", OnlineCheckInterval: 7 * time.Second},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"-c", "conf.json", "-x", "-db=inline.db"},
			want: Config{ServerEndpointAddr: "127.0.0.1:50051", SessionDBPath: "inline.db", OnlineCheckInterval: 3 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Config
			got.LoadDefaults()
			parseFlags(&got, tt.args)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
