// Package internal holds non-exported helpers shared by the flow engine.
package internal
