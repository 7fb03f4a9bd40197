// Package common contains constants and small helpers shared by the
// storefront client packages.
package common
