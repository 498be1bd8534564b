// Package handlers implements the business logic behind the walnut CLI
// commands. Each handler is a plain function taking a context and options;
// collaborators are package-level variables so tests can replace them.
package handlers
