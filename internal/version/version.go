// 包 version：构建期注入的版本信息
//
//	go build -ldflags "-X shodan-inspector/internal/version.Version=v1.2.0 -X shodan-inspector/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

var (
	Version = "dev"
	Commit  = "unknown"
)

// String：形如 "dev (unknown)"
func String() string { return Version + " (" + Commit + ")" }
