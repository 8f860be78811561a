package enrichment

import (
	"fmt"

	"github.com/mssola/user_agent"
)

type UAInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseUserAgent classifies the caller for request logs. An empty header
// yields an "unknown" client rather than an error.
func ParseUserAgent(uaString string) *UAInfo {
	if uaString == "" {
		return &UAInfo{Browser: "unknown", OS: "unknown", DeviceType: "unknown"}
	}

	ua := user_agent.New(uaString)

	browser, _ := ua.Browser()
	if browser == "" {
		browser = "unknown"
	}

	deviceType := "desktop"
	if ua.Bot() {
		deviceType = "bot"
	} else if ua.Mobile() {
		deviceType = "mobile"
	}

	os := ua.OS()
	if os == "" {
		os = "unknown"
	}

	return &UAInfo{
		Browser:    browser,
		OS:         os,
		DeviceType: deviceType,
	}
}

func (u *UAInfo) String() string {
	return fmt.Sprintf("%s/%s/%s", u.DeviceType, u.Browser, u.OS)
}
