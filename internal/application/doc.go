// Package application provides application initialization and dependency
// wiring. It turns the loaded settings into a link policy, feed resolver,
// and output cleaner, and runs the publish-preparation steps, keeping the
// main package focused on CLI parsing and orchestration.
package application
