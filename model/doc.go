// Package model defines stable boundary types for JSON output.
//
// These projections never feed back into identifier parsing; the catid
// package remains the only source of encoding rules.
package model
