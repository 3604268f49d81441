package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.2.3.4:1234", want: "1.2.3.4:1234"},
		{in: " 1.2.3.4:1234 ", want: "1.2.3.4:1234"},
		{in: "Master.BF2Hub.com:28911", want: "master.bf2hub.com:28911"},
		{in: "1.2.3.4:01234", want: "1.2.3.4:1234"},
		{in: "[::1]:29900", want: "[::1]:29900"},
		{in: "1.2.3.4", wantErr: true},
		{in: ":1234", wantErr: true},
		{in: "1.2.3.4:0", wantErr: true},
		{in: "1.2.3.4:65536", wantErr: true},
		{in: "1.2.3.4:port", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeAddress(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
