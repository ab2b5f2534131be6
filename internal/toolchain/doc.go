// Package toolchain drives the external build tool: project scaffolding and
// test execution through a single process-invocation seam.
package toolchain
