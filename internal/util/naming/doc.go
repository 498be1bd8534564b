// Package naming provides consistent naming functions for World paths.
//
// Walnut directories are named by a slug derived from the entity name
// (lowercase, runs of other characters collapsed to "-"). Domain folders
// carry a numeric prefix so they sort in a fixed order: 01_Archive,
// 02_Life, 03_Inputs, 04_Ventures, 05_Experiments.
package naming
