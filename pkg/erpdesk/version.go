package erpdesk

// Version is the erpdesk release, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/erpdesk/pkg/erpdesk.Version=...".
var Version = "v0.4.0"
