package osinfo

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/chat-linux-gguf/chatmenu/internal/errdefs"
)

const osReleasePath = "/etc/os-release"

// RecommendedDistro is what the installer scripts are written against.
// Anything else works but gets a warning at startup.
const RecommendedDistro = "ubuntu"

type OSInfo struct {
	Distribution string
	Version      string
	VersionID    string
	PrettyName   string
	Architecture string
}

var getOsFunc = getGoos

func getGoos() string {
	return runtime.GOOS
}

// GetOSInfo detects the host OS. Non-Linux hosts are an error; the caller
// decides whether that is fatal.
func GetOSInfo(fs afero.Fs) (*OSInfo, error) {
	if getOsFunc() != "linux" {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeNotLinux,
			fmt.Sprintf("only linux is supported, but I found %s", getOsFunc()))
	}

	info := &OSInfo{
		Architecture: runtime.GOARCH,
	}

	file, err := fs.Open(osReleasePath)
	if err != nil {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeGeneric, "failed to detect Linux distribution")
	}
	defer file.Close()

	if err := parseOSRelease(file, info); err != nil {
		return nil, err
	}
	return info, nil
}

// IsRecommended reports whether the detected distribution matches what the
// installer targets.
func (i *OSInfo) IsRecommended() bool {
	return strings.EqualFold(i.Distribution, RecommendedDistro)
}

func parseOSRelease(r io.Reader, info *OSInfo) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := parts[0]
		value := strings.Trim(parts[1], "\"")

		switch key {
		case "ID":
			info.Distribution = value
		case "VERSION_ID":
			info.VersionID = value
		case "VERSION":
			info.Version = value
		case "PRETTY_NAME":
			info.PrettyName = value
		}
	}

	return scanner.Err()
}
