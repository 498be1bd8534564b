// Package templates renders the documents a World is scaffolded with.
//
// Every function here is pure: the same Configuration, entity and
// timestamp always produce byte-identical text. The current time is an
// explicit argument so that callers (and tests) control it.
//
// Documents fall in two families. World documents live in the hidden
// .claude folder: the identity (CLAUDE.md), settings.json,
// preferences.yaml and world-config.yaml. Walnut documents are the five
// _core files every walnut carries: key, now, log, insights and tasks.
package templates
