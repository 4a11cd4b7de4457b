// Package commands dispatches RVExtensionArgs calls to named handlers.
// Handlers are plain Go functions over decoded Domain Strings; they know
// nothing about Host pointers or buffers.
package commands
