package version

import (
	"encoding/json"
	"runtime/debug"
)

// Version carries the vcs revision and build time as a json blob,
// logged at startup and published on the status topic.
var Version = func() string {
	type versionInfo struct {
		Commit string `json:"commit"`
		Time   string `json:"time"`
	}
	v := versionInfo{}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				v.Commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				v.Time = setting.Value
			}
		}
	}
	b, err := json.Marshal(&v)
	if err != nil {
		return "{}"
	}

	return string(b)
}()
