//go:build !unix

package main

func socketGroup(string) string {
	return ""
}
