//go:build dev

package constants

// DevBuild enables debugging affordances such as unlocking every day.
const DevBuild = true
