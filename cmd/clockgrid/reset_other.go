//go:build !linux

package main

import "os"

var shutdownSignals = []os.Signal{os.Interrupt}

func resetTerminalMode() {}
