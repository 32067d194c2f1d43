package lqip

// Version is the library version embedded in error messages.
// Set by ldflags during release builds:
//
//	-ldflags "-X github.com/ironsheep/lqip.Version=1.2.3"
var Version = "0.1.0"
