package meta

// Version is overwritten at build time with
// -ldflags "-X github.com/lbryio/bisect/meta.Version=..."
var Version = "dev"
