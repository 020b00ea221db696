package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"2s"`, want: 2 * time.Second},
		{name: "compound string", in: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", in: `2000000000`, want: 2 * time.Second},
		{name: "numeric string", in: `"1500"`, want: 1500 * time.Nanosecond},
		{name: "garbage string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
		{name: "broken json", in: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 2 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(b))
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		Delay   Duration `yaml:"delay"`
		Timeout Duration `yaml:"timeout"`
	}
	err := yaml.Unmarshal([]byte("delay: 2s\ntimeout: 30000000000\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Delay.Duration)
	assert.Equal(t, 30*time.Second, cfg.Timeout.Duration)

	err = yaml.Unmarshal([]byte("delay: [1, 2]\n"), &cfg)
	require.Error(t, err)

	err = yaml.Unmarshal([]byte("delay: later\n"), &cfg)
	require.Error(t, err)
}
