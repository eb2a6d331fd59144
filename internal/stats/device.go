// Package stats computes the dashboard aggregates from snapshots of users,
// subscriptions, and devices. Everything here is pure: no storage access,
// no clock other than the instant the caller passes in.
package stats

import "strings"

// DeviceType is a coarse device bucket derived from a user agent.
type DeviceType string

const (
	DeviceDesktop DeviceType = "Desktop"
	DeviceMobile  DeviceType = "Mobile"
	DeviceTablet  DeviceType = "Tablet"
)

// ClassifyDevice buckets a raw user-agent string. Tablet markers win over
// mobile markers, so an iPad UA containing "mobile" still counts as Tablet.
// A missing user agent counts as Desktop.
func ClassifyDevice(userAgent *string) DeviceType {
	if userAgent == nil {
		return DeviceDesktop
	}
	ua := strings.ToLower(*userAgent)
	if strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet") {
		return DeviceTablet
	}
	if strings.Contains(ua, "mobi") || strings.Contains(ua, "iphone") || strings.Contains(ua, "android") {
		return DeviceMobile
	}
	return DeviceDesktop
}
