//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

// Installs the viewer.
func Install() error {
	version, err := version()
	if err != nil {
		return err
	}
	return sh.Run("go", "install", "-ldflags", "-X main.version="+version)
}

// Creates an executable for the given platform. Possible platforms are "linux", "linuxarm" and "osxintel".
func Build(platform string) error {
	envMap, err := env(platform)
	if err != nil {
		return err
	}
	version, err := version()
	if err != nil {
		return err
	}
	return sh.RunWith(envMap, "go", "build", "-o", "viewer", "-ldflags", "-X main.version="+version)
}

// Runs the tests of all packages.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

func version() (string, error) {
	return sh.Output("git", "describe", "--always", "--long", "--dirty")
}

func env(platform string) (map[string]string, error) {
	switch platform {
	case "linux":
		return map[string]string{
			"GOOS":   "linux",
			"GOARCH": "amd64",
		}, nil
	case "linuxarm":
		return map[string]string{
			"GOOS":   "linux",
			"GOARCH": "arm64",
		}, nil
	case "osxintel":
		return map[string]string{
			"GOOS":   "darwin",
			"GOARCH": "amd64",
		}, nil
	}

	return nil, fmt.Errorf("Platform '%s' not supported", platform)
}
