package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name      string
		userAgent *string
		want      DeviceType
	}{
		{"nil user agent", nil, DeviceDesktop},
		{"empty string", strPtr(""), DeviceDesktop},
		{"plain desktop browser", strPtr("Mozilla/5.0 (Windows NT 10.0; Win64; x64)"), DeviceDesktop},
		{"iphone", strPtr("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"), DeviceMobile},
		{"android", strPtr("Mozilla/5.0 (Linux; Android 14; Pixel 8)"), DeviceMobile},
		{"generic mobi token", strPtr("Opera/9.80 (J2ME/MIDP; Opera Mobi/23.334)"), DeviceMobile},
		{"ipad beats mobile token", strPtr("Mozilla/5.0 (iPad; CPU OS 17_0) Mobile/15E148"), DeviceTablet},
		{"tablet token", strPtr("Mozilla/5.0 (Linux; Android 13; SM-X710) Tablet"), DeviceTablet},
		{"case insensitive", strPtr("SOMETHING IPAD SOMETHING"), DeviceTablet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDevice(tt.userAgent))
		})
	}
}

func TestClassifyDeviceBucketsSumToInput(t *testing.T) {
	agents := []*string{
		nil,
		strPtr("Mozilla/5.0 (iPhone)"),
		strPtr("Mozilla/5.0 (iPad)"),
		strPtr("curl/8.4.0"),
		strPtr("Mozilla/5.0 (Linux; Android 14)"),
	}

	counts := map[DeviceType]int{}
	for _, ua := range agents {
		counts[ClassifyDevice(ua)]++
	}

	total := counts[DeviceDesktop] + counts[DeviceMobile] + counts[DeviceTablet]
	assert.Equal(t, len(agents), total)
}
