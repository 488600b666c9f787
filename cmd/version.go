package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	buildTime  = "unknown"
)

// SetVersion records the build information injected at link time
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
	rootCmd.Version = version
}

// parseVersion parses a build version such as "v1.2.3". Development builds
// are not valid semantic versions.
func parseVersion(version string) (semver.Version, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("not a release version %q: %w", version, err)
	}
	return v, nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipInitAnnotation: ""},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString())
	},
}

func versionString() string {
	version := appVersion
	if v, err := parseVersion(appVersion); err == nil {
		version = "v" + v.String()
	} else {
		version += " (development build)"
	}
	return fmt.Sprintf("titlewatch %s\nBuilt: %s\nGo: %s %s/%s",
		version, buildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
